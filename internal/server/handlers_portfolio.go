package server

import (
	"errors"
	"net/http"

	"github.com/smartfund/smartfund/internal/services/portfolio"
)

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.app.PortfolioService.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// handlePortfolioAllocation handles GET /api/portfolio/allocation.
func (s *Server) handlePortfolioAllocation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	allocation, err := s.app.PortfolioService.Allocation(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"allocation": allocation,
	})
}

// handlePortfolioRefresh handles POST /api/portfolio/refresh.
// Returns 409 while another refresh is in flight, 502 when the gateway
// call fails (holdings are left untouched in that case).
func (s *Server) handlePortfolioRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	holdings, err := s.app.PortfolioService.RefreshNavs(r.Context())
	if err != nil {
		if errors.Is(err, portfolio.ErrRefreshBusy) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}
