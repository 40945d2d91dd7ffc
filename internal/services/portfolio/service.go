package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/models"
)

// ErrRefreshBusy is returned when a NAV refresh is requested while another
// one is still in flight.
var ErrRefreshBusy = errors.New("a NAV refresh is already in progress")

// Service implements interfaces.PortfolioService. It is the single writer
// for the holdings list: every mutation is copy-on-write over the stored
// list and persists immediately.
type Service struct {
	storage    interfaces.StorageManager
	gemini     interfaces.GeminiClient
	logger     *common.Logger
	looseMatch bool

	refreshing atomic.Bool
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLooseMatch enables substring containment as a fallback when matching
// refresh quotes to holdings by fund code. Exact match is the default;
// loose matching risks pairing a quote with the wrong fund when codes
// overlap.
func WithLooseMatch(enabled bool) ServiceOption {
	return func(s *Service) {
		s.looseMatch = enabled
	}
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, gemini interfaces.GeminiClient, logger *common.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		gemini:  gemini,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetHoldings returns the current holdings, ordered by cfg when given.
func (s *Service) GetHoldings(ctx context.Context, cfg *models.SortConfig) ([]models.Holding, error) {
	holdings, err := s.storage.HoldingStore().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		holdings = SortHoldings(holdings, *cfg)
	}
	return holdings, nil
}

// AddHolding validates and stores a new position. The entry gate requires
// code and name, positive shares, and a positive cost price; a zero-cost
// holding would make the profit rate undefined.
func (s *Service) AddHolding(ctx context.Context, holding models.Holding) (*models.Holding, error) {
	holding.Code = strings.TrimSpace(holding.Code)
	holding.Name = strings.TrimSpace(holding.Name)

	if holding.Code == "" {
		return nil, fmt.Errorf("fund code is required")
	}
	if holding.Name == "" {
		return nil, fmt.Errorf("fund name is required")
	}
	if holding.Shares <= 0 {
		return nil, fmt.Errorf("shares must be positive")
	}
	if holding.CostPrice <= 0 {
		return nil, fmt.Errorf("cost price must be positive")
	}
	if holding.CurrentNav < 0 {
		return nil, fmt.Errorf("current NAV must not be negative")
	}

	if holding.ID == "" {
		holding.ID = uuid.New().String()
	}
	if holding.CurrentNav == 0 {
		holding.CurrentNav = holding.CostPrice
	}
	if holding.LastUpdate.IsZero() {
		holding.LastUpdate = time.Now().UTC()
	}

	if _, err := s.storage.HoldingStore().Add(ctx, holding); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", holding.Code).Str("id", holding.ID).Msg("Holding added")
	return &holding, nil
}

// UpdateHolding applies a partial edit to an existing position.
func (s *Service) UpdateHolding(ctx context.Context, id string, update models.HoldingUpdate) (*models.Holding, error) {
	if update.Shares != nil && *update.Shares <= 0 {
		return nil, fmt.Errorf("shares must be positive")
	}
	if update.CostPrice != nil && *update.CostPrice <= 0 {
		return nil, fmt.Errorf("cost price must be positive")
	}
	if update.CurrentNav != nil && *update.CurrentNav < 0 {
		return nil, fmt.Errorf("current NAV must not be negative")
	}

	updated, err := s.storage.HoldingStore().Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	for i := range updated {
		if updated[i].ID == id {
			return &updated[i], nil
		}
	}
	return nil, models.ErrHoldingNotFound
}

// RemoveHolding deletes a position and persists immediately.
func (s *Service) RemoveHolding(ctx context.Context, id string) error {
	if _, err := s.storage.HoldingStore().Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Holding removed")
	return nil
}

// Summary returns the aggregate portfolio figures.
func (s *Service) Summary(ctx context.Context) (*models.PortfolioStats, error) {
	holdings, err := s.storage.HoldingStore().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := Aggregate(holdings)
	return &stats, nil
}

// Allocation returns per-holding market-value weights.
func (s *Service) Allocation(ctx context.Context) ([]models.AllocationSlice, error) {
	holdings, err := s.storage.HoldingStore().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Allocation(holdings), nil
}

// RefreshNavs asks the gateway for fresh NAVs and applies them by fund
// code. Only holdings with a matching, positive-valued quote are touched;
// a gateway failure aborts the whole batch with stored state untouched.
func (s *Service) RefreshNavs(ctx context.Context) ([]models.Holding, error) {
	if !s.refreshing.CompareAndSwap(false, true) {
		return nil, ErrRefreshBusy
	}
	defer s.refreshing.Store(false)

	holdings, err := s.storage.HoldingStore().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return []models.Holding{}, nil
	}

	if s.gemini == nil {
		return nil, fmt.Errorf("gemini client not configured")
	}

	quotes, err := s.gemini.RefreshNAVs(ctx, holdings)
	if err != nil {
		return nil, fmt.Errorf("NAV refresh failed: %w", err)
	}

	now := time.Now().UTC()
	updated := make([]models.Holding, len(holdings))
	matched := 0
	for i, h := range holdings {
		if quote := s.matchQuote(h, quotes); quote != nil && quote.Nav > 0 {
			h.CurrentNav = quote.Nav
			h.LastUpdate = now
			matched++
		}
		updated[i] = h
	}

	if err := s.storage.HoldingStore().SaveAll(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("holdings", len(updated)).
		Int("matched", matched).
		Msg("NAV refresh applied")

	return updated, nil
}

// matchQuote finds the quote for a holding by fund code. Exact match by
// default; with loose matching enabled, a quote whose code is contained in
// the holding's code also counts.
func (s *Service) matchQuote(h models.Holding, quotes []models.NavQuote) *models.NavQuote {
	for i := range quotes {
		if quotes[i].Code == h.Code {
			return &quotes[i]
		}
	}
	if s.looseMatch {
		for i := range quotes {
			if strings.Contains(h.Code, quotes[i].Code) {
				return &quotes[i]
			}
		}
	}
	return nil
}

// Snapshot returns the read-only holdings view supplied to the advisor.
func (s *Service) Snapshot(ctx context.Context) ([]models.HoldingSnapshot, error) {
	holdings, err := s.storage.HoldingStore().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]models.HoldingSnapshot, len(holdings))
	for i, h := range holdings {
		snapshot[i] = models.HoldingSnapshot{
			Name:    h.Name,
			Code:    h.Code,
			Cost:    h.CostPrice,
			Shares:  h.Shares,
			Current: h.CurrentNav,
		}
	}
	return snapshot, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
