// Package interfaces defines service contracts for SmartFund
package interfaces

import (
	"context"

	"github.com/smartfund/smartfund/internal/models"
)

// PortfolioService owns the holdings list and all mutations to it.
// Every mutation is copy-on-write over the stored list and persists
// immediately.
type PortfolioService interface {
	// GetHoldings returns the current holdings, ordered by cfg when given.
	GetHoldings(ctx context.Context, cfg *models.SortConfig) ([]models.Holding, error)

	// AddHolding validates and stores a new position. Code and name are
	// required; shares and cost price must be positive.
	AddHolding(ctx context.Context, holding models.Holding) (*models.Holding, error)

	// UpdateHolding applies a partial edit to an existing position.
	UpdateHolding(ctx context.Context, id string, update models.HoldingUpdate) (*models.Holding, error)

	// RemoveHolding deletes a position.
	RemoveHolding(ctx context.Context, id string) error

	// Summary returns the aggregate portfolio figures.
	Summary(ctx context.Context) (*models.PortfolioStats, error)

	// Allocation returns per-holding market-value weights.
	Allocation(ctx context.Context) ([]models.AllocationSlice, error)

	// RefreshNavs updates currentNav and lastUpdate for every holding with
	// a matching, positive-valued quote; unmatched holdings are returned
	// unchanged. A gateway failure aborts the whole batch leaving stored
	// state untouched. A second refresh while one is in flight returns
	// ErrRefreshBusy.
	RefreshNavs(ctx context.Context) ([]models.Holding, error)

	// Snapshot returns the read-only holdings view supplied to the advisor.
	Snapshot(ctx context.Context) ([]models.HoldingSnapshot, error)
}

// ScreenerService finds candidate funds matching user criteria.
type ScreenerService interface {
	// Screen returns recommendations for the criteria. Gateway failures
	// are swallowed and logged; the result is then an empty list.
	Screen(ctx context.Context, criteria models.ScreenCriteria) []models.FundRecommendation
}

// AdvisorService runs the portfolio-aware chat. The message log is held in
// memory only and never persisted across sessions.
type AdvisorService interface {
	// Chat appends the user turn, asks the gateway with full history and a
	// portfolio snapshot, appends the model turn, and returns it.
	Chat(ctx context.Context, message string) (*models.ChatMessage, []string, error)

	// History returns the ordered message log.
	History() []models.ChatMessage

	// Reset clears the message log.
	Reset()
}
