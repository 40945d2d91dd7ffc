// Package screener finds candidate funds matching user criteria via the
// AI gateway.
package screener

import (
	"context"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/models"
)

// Service implements interfaces.ScreenerService.
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewService creates a new screener service.
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		logger: logger,
	}
}

// Screen returns recommendations for the criteria. Unlike a NAV refresh,
// a gateway failure here is not an error the caller handles: it is logged
// and rendered as an empty result.
func (s *Service) Screen(ctx context.Context, criteria models.ScreenCriteria) []models.FundRecommendation {
	if s.gemini == nil {
		s.logger.Warn().Msg("Fund screening unavailable: gemini client not configured")
		return []models.FundRecommendation{}
	}

	recs, err := s.gemini.ScreenFunds(ctx, criteria)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fund screening failed")
		return []models.FundRecommendation{}
	}
	if recs == nil {
		recs = []models.FundRecommendation{}
	}

	s.logger.Debug().Int("results", len(recs)).Msg("Fund screening complete")
	return recs
}

// Ensure Service implements ScreenerService
var _ interfaces.ScreenerService = (*Service)(nil)
