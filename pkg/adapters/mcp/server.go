// Package mcp exposes the lead wizard and the image resolver as MCP tools, so
// an assistant can walk a visitor through the form on their behalf.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/aretw0/portico/pkg/session"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// FormResourceURI is the resource holding the form definition.
const FormResourceURI = "portico://form"

// ViewResponse is the JSON returned by every wizard tool.
type ViewResponse struct {
	SessionID string `json:"session_id"`
	wizard.View
}

// Server exposes a session manager and a resolver over MCP.
type Server struct {
	sessions  *session.Manager
	resolver  *imaging.Resolver
	logger    *slog.Logger
	version   string
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version announced to clients.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, resolver *imaging.Resolver, opts ...Option) *Server {
	s := &Server{
		sessions: sessions,
		resolver: resolver,
		logger:   logging.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("portico-mcp", s.version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	sessionArg := mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by wizard_start"))

	s.mcpServer.AddTool(mcp.NewTool("wizard_start",
		mcp.WithDescription("Open a new lead-qualification session positioned on step 1."),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("wizard_view",
		mcp.WithDescription("Show the current step, answers and errors of a session."),
		sessionArg,
	), s.handleView)

	s.mcpServer.AddTool(mcp.NewTool("wizard_update_field",
		mcp.WithDescription("Set a field value. Values are not validated until wizard_next."),
		sessionArg,
		mcp.WithString("name", mcp.Required(), mcp.Description("Field name, as listed in the step")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value")),
	), s.handleUpdateField)

	s.mcpServer.AddTool(mcp.NewTool("wizard_toggle_option",
		mcp.WithDescription("Select or deselect one of the step's multi-select choices."),
		sessionArg,
		mcp.WithString("option", mcp.Required(), mcp.Description("Choice label")),
	), s.handleToggleOption)

	s.mcpServer.AddTool(mcp.NewTool("wizard_next",
		mcp.WithDescription("Validate the current step and advance when it is valid."),
		sessionArg,
	), s.handleNext)

	s.mcpServer.AddTool(mcp.NewTool("wizard_back",
		mcp.WithDescription("Return to the previous step."),
		sessionArg,
	), s.handleBack)

	s.mcpServer.AddTool(mcp.NewTool("wizard_submit",
		mcp.WithDescription("Send the completed form. Only allowed on the final step."),
		sessionArg,
	), s.handleSubmit)

	s.mcpServer.AddTool(mcp.NewTool("image_resolve",
		mcp.WithDescription("Resolve an image through the retry cascade and report the final source or placeholder."),
		mcp.WithString("src", mcp.Required(), mcp.Description("Primary image URI")),
		mcp.WithString("fallback", mcp.Description("Alternate image URI")),
		mcp.WithString("label", mcp.Description("Text shown with the placeholder")),
	), s.handleImageResolve)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormResourceURI, "Lead form definition",
		mcp.WithResourceDescription("Steps, fields and choices of the lead form"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.sessions.Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FormResourceURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) handleStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ctrl, err := s.sessions.Start(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
	}
	return viewResult(id, ctrl.View()), nil
}

func (s *Server) handleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, req, func(context.Context, *wizard.Controller) error { return nil })
}

func (s *Server) handleUpdateField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}
	return s.apply(ctx, req, func(ctx context.Context, c *wizard.Controller) error {
		return c.UpdateField(ctx, name, value)
	})
}

func (s *Server) handleToggleOption(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	option, err := req.RequireString("option")
	if err != nil {
		return mcp.NewToolResultError("option is required"), nil
	}
	return s.apply(ctx, req, func(ctx context.Context, c *wizard.Controller) error {
		_, err := c.ToggleOption(ctx, option)
		return err
	})
}

func (s *Server) handleNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, req, func(ctx context.Context, c *wizard.Controller) error {
		return c.GoNext(ctx)
	})
}

func (s *Server) handleBack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.apply(ctx, req, func(ctx context.Context, c *wizard.Controller) error {
		return c.GoBack(ctx)
	})
}

func (s *Server) handleSubmit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id is required"), nil
	}
	ctrl, err := s.sessions.Submit(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	return viewResult(id, ctrl.View()), nil
}

func (s *Server) handleImageResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, err := req.RequireString("src")
	if err != nil {
		return mcp.NewToolResultError("src is required"), nil
	}
	res, err := s.resolver.Resolve(ctx, imaging.Request{
		Source:   src,
		Fallback: req.GetString("fallback", ""),
		Label:    req.GetString("label", ""),
	})
	if err != nil {
		return nil, err
	}
	data, _ := json.Marshal(res)
	return mcp.NewToolResultText(string(data)), nil
}

// apply runs op under the session lock and reports the resulting view, or
// the operation's error as a tool error.
func (s *Server) apply(ctx context.Context, req mcp.CallToolRequest, op func(context.Context, *wizard.Controller) error) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var view wizard.View
	var opErr error
	err = s.sessions.Do(ctx, id, func(ctx context.Context, c *wizard.Controller) error {
		opErr = op(ctx, c)
		view = c.View()
		return nil
	})
	if err != nil {
		return errorResult(err), nil
	}
	if opErr != nil {
		s.logger.Debug("MCP: wizard operation rejected", "session_id", id, "err", opErr)
		return errorResult(opErr), nil
	}
	return viewResult(id, view), nil
}

func viewResult(id string, view wizard.View) *mcp.CallToolResult {
	data, _ := json.Marshal(ViewResponse{SessionID: id, View: view})
	return mcp.NewToolResultText(string(data))
}

// errorResult phrases err for the assistant, listing field messages for
// validation failures.
func errorResult(err error) *mcp.CallToolResult {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		data, _ := json.Marshal(verr.Fields)
		return mcp.NewToolResultError(fmt.Sprintf("step %d is incomplete: %s", verr.Step, data))
	}
	var serr *domain.SubmissionError
	if errors.As(err, &serr) {
		return mcp.NewToolResultError(serr.UserMessage())
	}
	return mcp.NewToolResultError(err.Error())
}
