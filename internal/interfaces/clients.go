// Package interfaces defines service contracts for SmartFund
package interfaces

import (
	"context"

	"github.com/smartfund/smartfund/internal/models"
)

// GeminiClient provides the four AI gateway operations. Each call is a
// single request/response exchange: no retries, no local rate limiting.
// Failures propagate as a single error to the caller.
type GeminiClient interface {
	// SearchFund finds the best-match fund identity and latest NAV for a
	// free-text code-or-name query. Returns nil (no error) when the
	// response is empty, malformed, or fails shape validation; returns an
	// error only on transport failure.
	SearchFund(ctx context.Context, query string) (*models.FundLookupResult, error)

	// RefreshNAVs resolves the latest NAV for each holding by fund code.
	// An empty holdings list returns an empty result without a network
	// call. Transport or parse failure returns an error; callers must
	// treat the whole batch as failed.
	RefreshNAVs(ctx context.Context, holdings []models.Holding) ([]models.NavQuote, error)

	// ScreenFunds returns up to a small fixed number of candidate funds
	// matching the criteria, with rationale text.
	ScreenFunds(ctx context.Context, criteria models.ScreenCriteria) ([]models.FundRecommendation, error)

	// Advise answers a user message given the full prior conversation and
	// a read-only snapshot of current holdings. Grounding citation URIs
	// are returned when the response carries them.
	Advise(ctx context.Context, history []models.ChatMessage, message string, snapshot []models.HoldingSnapshot) (*models.AdvisorReply, error)
}
