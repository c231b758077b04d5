package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/isvaryam/assistant/internal/domain"
)

// maxBodyBytes caps inbound request bodies.
const maxBodyBytes = 64 * 1024

// registerRoutes wires the HTTP endpoints.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/chatbot", s.handleChat)
	mux.HandleFunc("/feedback", s.handleFeedback)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
}

// handleChat routes one chat message and always answers 200 with a
// reply when the payload is decodable. Model failures surface as the
// degraded reply, never as an HTTP error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ChatRequest
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.log.Warn().Err(err).Msg("undecodable chat request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	d := s.router.Handle(r.Context(), req)

	writeJSON(w, http.StatusOK, domain.ChatResponse{Response: d.Reply})
}

// handleFeedback accepts a feedback payload and acknowledges it. The
// payload is stored verbatim when a feedback store is configured;
// storage failures are logged but never surfaced to the caller.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	if s.feedback != nil {
		var probe struct {
			UserID string `json:"user_id"`
		}
		json.Unmarshal(raw, &probe)

		fb := domain.Feedback{UserID: probe.UserID, Payload: string(raw)}
		if err := s.feedback.Save(fb); err != nil {
			s.log.Error().Err(err).Msg("saving feedback")
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebSocket upgrades to WebSocket and runs a chat loop: each
// inbound JSON chat request yields one JSON chat response, routed
// through the same path as POST /chatbot.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxBodyBytes)

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("new websocket connection")

	for {
		var req domain.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Str("remote", r.RemoteAddr).Msg("client closed connection")
			} else {
				s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket read error")
			}
			return
		}

		d := s.router.Handle(r.Context(), req)

		if err := conn.WriteJSON(domain.ChatResponse{Response: d.Reply}); err != nil {
			s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket write error")
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
