// Package advisor runs the portfolio-aware chat session.
package advisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/models"
)

// Service implements interfaces.AdvisorService. The message log is
// append-only, held in memory only, and never persisted across sessions.
type Service struct {
	gemini    interfaces.GeminiClient
	portfolio interfaces.PortfolioService
	logger    *common.Logger

	mu       sync.Mutex
	messages []models.ChatMessage
}

// NewService creates a new advisor service.
func NewService(gemini interfaces.GeminiClient, portfolio interfaces.PortfolioService, logger *common.Logger) *Service {
	return &Service{
		gemini:    gemini,
		portfolio: portfolio,
		logger:    logger,
	}
}

// Chat appends the user turn, asks the gateway with the full prior history
// and a portfolio snapshot, appends the model turn, and returns it. On
// gateway failure neither turn is recorded, so the log only ever holds
// completed exchanges.
func (s *Service) Chat(ctx context.Context, message string) (*models.ChatMessage, []string, error) {
	if message == "" {
		return nil, nil, fmt.Errorf("message is required")
	}
	if s.gemini == nil {
		return nil, nil, fmt.Errorf("gemini client not configured")
	}

	snapshot, err := s.portfolio.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to snapshot portfolio: %w", err)
	}

	history := s.History()

	reply, err := s.gemini.Advise(ctx, history, message, snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("advisory call failed: %w", err)
	}

	now := time.Now().UTC()
	userTurn := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleUser,
		Text:      message,
		Timestamp: now,
	}
	modelTurn := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleModel,
		Text:      reply.Text,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, userTurn, modelTurn)
	s.mu.Unlock()

	s.logger.Debug().Int("sources", len(reply.Sources)).Msg("Advisor turn complete")
	return &modelTurn, reply.Sources, nil
}

// History returns a copy of the ordered message log.
func (s *Service) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]models.ChatMessage, len(s.messages))
	copy(history, s.messages)
	return history
}

// Reset clears the message log.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
