package server

import (
	"net/http"
	"time"

	"github.com/smartfund/smartfund/internal/common"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig handles GET /api/config. Secrets are redacted.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	geminiConfigured := s.app.GeminiClient != nil

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":         cfg.Environment,
		"storage_path":        cfg.Storage.Path,
		"gemini_model":        cfg.Gemini.Model,
		"gemini_configured":   geminiConfigured,
		"refresh_loose_match": cfg.Portfolio.RefreshLooseMatch,
	})
}
