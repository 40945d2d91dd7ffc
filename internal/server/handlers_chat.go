package server

import (
	"net/http"
	"strings"
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req chatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, sources, err := s.app.AdvisorService.Chat(r.Context(), req.Message)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": reply,
		"sources": sources,
	})
}

// handleChatHistory handles GET and DELETE /api/chat/history.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		history := s.app.AdvisorService.History()
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"messages": history,
			"count":    len(history),
		})
	case http.MethodDelete:
		s.app.AdvisorService.Reset()
		WriteJSON(w, http.StatusOK, map[string]interface{}{"cleared": true})
	default:
		w.Header().Set("Allow", "GET, DELETE")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
