package http

import (
	"context"
	"net/http"

	"github.com/aretw0/portico/pkg/wizard"
)

type viewResponse struct {
	SessionID string `json:"session_id"`
	wizard.View
}

// GetForm returns the form definition shared by every session.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.Definition())
}

// StartSession opens a fresh session on step 1.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := s.Sessions.Start(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("Wizard session started", "session_id", id)
	writeJSON(w, http.StatusCreated, viewResponse{SessionID: id, View: ctrl.View()})
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	s.apply(w, r, id, func(context.Context, *wizard.Controller) error { return nil })
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) UpdateField(w http.ResponseWriter, r *http.Request, id SessionID, name string) {
	var body UpdateFieldJSONRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.apply(w, r, id, func(ctx context.Context, c *wizard.Controller) error {
		return c.UpdateField(ctx, name, body.Value)
	})
}

func (s *Server) ToggleOption(w http.ResponseWriter, r *http.Request, id SessionID) {
	var body ToggleOptionJSONRequestBody
	if err := decodeBody(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.apply(w, r, id, func(ctx context.Context, c *wizard.Controller) error {
		_, err := c.ToggleOption(ctx, body.Option)
		return err
	})
}

func (s *Server) GoNext(w http.ResponseWriter, r *http.Request, id SessionID) {
	s.apply(w, r, id, func(ctx context.Context, c *wizard.Controller) error {
		return c.GoNext(ctx)
	})
}

func (s *Server) GoBack(w http.ResponseWriter, r *http.Request, id SessionID) {
	s.apply(w, r, id, func(ctx context.Context, c *wizard.Controller) error {
		return c.GoBack(ctx)
	})
}

// Submit sends the lead. The session lock is not held across the backend call.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request, id SessionID) {
	ctrl, err := s.Sessions.Submit(r.Context(), id)
	if ctrl != nil {
		s.publish(id, ctrl.View())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{SessionID: id, View: ctrl.View()})
}

// apply runs op under the session lock, publishes the resulting view to
// subscribers and writes it, or the mapped error, to w.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, id string, op func(context.Context, *wizard.Controller) error) {
	var view wizard.View
	var opErr error
	err := s.Sessions.Do(r.Context(), id, func(ctx context.Context, c *wizard.Controller) error {
		opErr = op(ctx, c)
		view = c.View()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if r.Method != http.MethodGet {
		s.publish(id, view)
	}
	if opErr != nil {
		s.writeError(w, r, opErr)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{SessionID: id, View: view})
}

func (s *Server) publish(id string, view wizard.View) {
	s.Streams.Broadcast(id, mustJSON(viewResponse{SessionID: id, View: view}))
}
