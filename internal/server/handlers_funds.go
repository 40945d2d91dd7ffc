package server

import (
	"net/http"
	"strings"

	"github.com/smartfund/smartfund/internal/models"
)

// handleFundLookup handles GET /api/funds/lookup?q=...
// 404 means the gateway answered but found no usable match; 502 means the
// gateway call itself failed.
func (s *Server) handleFundLookup(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	if s.app.GeminiClient == nil {
		WriteError(w, http.StatusServiceUnavailable, "gemini client not configured")
		return
	}

	result, err := s.app.GeminiClient.SearchFund(r.Context(), query)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	if result == nil {
		WriteError(w, http.StatusNotFound, "no fund found for query")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleFundScreen handles POST /api/funds/screen. Always 200: a failed
// screening renders as an empty result, not an error.
func (s *Server) handleFundScreen(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var criteria models.ScreenCriteria
	if !DecodeJSON(w, r, &criteria) {
		return
	}

	recommendations := s.app.ScreenerService.Screen(r.Context(), criteria)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}
