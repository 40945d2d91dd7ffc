package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Holdings
	mux.HandleFunc("/api/holdings/", s.routeHoldings)
	mux.HandleFunc("/api/holdings", s.handleHoldingsRoot)

	// Portfolio
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/allocation", s.handlePortfolioAllocation)
	mux.HandleFunc("/api/portfolio/refresh", s.handlePortfolioRefresh)

	// Funds (lookup + screening)
	mux.HandleFunc("/api/funds/lookup", s.handleFundLookup)
	mux.HandleFunc("/api/funds/screen", s.handleFundScreen)

	// Advisory chat
	mux.HandleFunc("/api/chat/history", s.handleChatHistory)
	mux.HandleFunc("/api/chat", s.handleChat)
}

// routeHoldings dispatches /api/holdings/{id} to the appropriate handler.
func (s *Server) routeHoldings(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/holdings/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "holding id is required in path")
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		s.handleHoldingUpdate(w, r, id)
	case http.MethodDelete:
		s.handleHoldingRemove(w, r, id)
	default:
		w.Header().Set("Allow", "PATCH, PUT, DELETE")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleHoldingsRoot dispatches /api/holdings by method.
func (s *Server) handleHoldingsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHoldingsList(w, r)
	case http.MethodPost:
		s.handleHoldingAdd(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
