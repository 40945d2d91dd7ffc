package server

import (
	"errors"
	"net/http"

	"github.com/smartfund/smartfund/internal/models"
)

// handleHoldingsList handles GET /api/holdings.
// Optional query parameters: sort (name|shares|currentNav|marketValue|
// profit|profitRate) and direction (asc|desc, default desc).
func (s *Server) handleHoldingsList(w http.ResponseWriter, r *http.Request) {
	var cfg *models.SortConfig
	if key := models.SortKey(r.URL.Query().Get("sort")); key != "" {
		if !models.ValidSortKey(key) {
			WriteError(w, http.StatusBadRequest, "invalid sort key: "+string(key))
			return
		}
		direction := models.SortDirection(r.URL.Query().Get("direction"))
		if direction != models.SortAsc {
			direction = models.SortDesc
		}
		cfg = &models.SortConfig{Key: key, Direction: direction}
	}

	holdings, err := s.app.PortfolioService.GetHoldings(r.Context(), cfg)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// handleHoldingAdd handles POST /api/holdings.
func (s *Server) handleHoldingAdd(w http.ResponseWriter, r *http.Request) {
	var holding models.Holding
	if !DecodeJSON(w, r, &holding) {
		return
	}

	created, err := s.app.PortfolioService.AddHolding(r.Context(), holding)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// handleHoldingUpdate handles PATCH/PUT /api/holdings/{id}.
func (s *Server) handleHoldingUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var update models.HoldingUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}

	updated, err := s.app.PortfolioService.UpdateHolding(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, models.ErrHoldingNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// handleHoldingRemove handles DELETE /api/holdings/{id}.
func (s *Server) handleHoldingRemove(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.PortfolioService.RemoveHolding(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrHoldingNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"removed": true,
		"id":      id,
	})
}
