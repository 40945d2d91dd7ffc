package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartfund/smartfund/internal/models"
)

// parseLookupResult decodes and validates a fund lookup response. The
// response is an untyped-contract boundary: every field is checked before
// any of it is trusted. Returns nil for anything short of a complete
// record so callers never see a partially-populated result.
func parseLookupResult(text string) *models.FundLookupResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var result models.FundLookupResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil
	}

	if result.Code == "" || result.Name == "" || result.Nav <= 0 {
		return nil
	}
	return &result
}

// parseNavQuotes decodes a batch refresh response. A response that is not
// a JSON array of quote objects is a parse failure, not an empty result.
func parseNavQuotes(text string) ([]models.NavQuote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.NavQuote{}, nil
	}

	var quotes []models.NavQuote
	if err := json.Unmarshal([]byte(text), &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse NAV quotes: %w", err)
	}

	// Drop entries with no code; they can never match a holding.
	valid := quotes[:0]
	for _, q := range quotes {
		if q.Code != "" {
			valid = append(valid, q)
		}
	}
	return valid, nil
}

// parseRecommendations decodes a screening response, dropping entries
// without the identifying fields.
func parseRecommendations(text string) ([]models.FundRecommendation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []models.FundRecommendation{}, nil
	}

	var recs []models.FundRecommendation
	if err := json.Unmarshal([]byte(text), &recs); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	valid := recs[:0]
	for _, r := range recs {
		if r.Code != "" && r.Name != "" {
			valid = append(valid, r)
		}
	}
	return valid, nil
}
