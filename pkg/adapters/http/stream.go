package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/ticker"
	"github.com/aretw0/portico/pkg/wizard"
)

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> set of channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a buffered channel for sessionID. The returned func
// unregisters and closes it.
func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of sessionID, dropping it for slow clients.
func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Subscribers reports how many streams are open for sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

func startSSE(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	return flusher, true
}

func writeEvent(w http.ResponseWriter, f http.Flusher, event, data string) {
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
	f.Flush()
}

// SubscribeSession streams the session view after every change, starting with the current one.
func (s *Server) SubscribeSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	// Subscribe before the snapshot so no change falls between the two.
	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	var current wizard.View
	err := s.Sessions.Do(r.Context(), id, func(_ context.Context, c *wizard.Controller) error {
		current = c.View()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := startSSE(w)
	if !ok {
		return
	}
	s.logger.Debug("SSE: Subscribed to session", "session_id", id)
	s.publishTo(w, flusher, id, current)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE: Client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, flusher, "view", msg)
		}
	}
}

func (s *Server) publishTo(w http.ResponseWriter, f http.Flusher, id string, view wizard.View) {
	writeEvent(w, f, "view", mustJSON(viewResponse{SessionID: id, View: view}))
}

// SubscribeTicker streams a feed's rotating messages until the client leaves.
func (s *Server) SubscribeTicker(w http.ResponseWriter, r *http.Request, name string) {
	feed, err := s.Feeds.Lookup(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	flusher, ok := startSSE(w)
	if !ok {
		return
	}
	for msg := range ticker.Run(r.Context(), feed) {
		writeEvent(w, flusher, "message", msg)
	}
}
