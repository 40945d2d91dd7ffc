package portfolio

import (
	"sort"

	"github.com/smartfund/smartfund/internal/models"
)

// SortHoldings returns a new slice ordered by the given sort state. The
// input is never mutated. The sort is stable so equal-value rows keep
// their relative order between calls.
func SortHoldings(holdings []models.Holding, cfg models.SortConfig) []models.Holding {
	sorted := make([]models.Holding, len(holdings))
	copy(sorted, holdings)

	less := lessFunc(cfg.Key)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cfg.Direction == models.SortAsc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})

	return sorted
}

// lessFunc builds the ascending comparator for a sort key. The name field
// compares lexically; everything else compares numerically on the raw or
// derived value.
func lessFunc(key models.SortKey) func(a, b models.Holding) bool {
	switch key {
	case models.SortKeyName:
		return func(a, b models.Holding) bool { return a.Name < b.Name }
	case models.SortKeyShares:
		return func(a, b models.Holding) bool { return a.Shares < b.Shares }
	case models.SortKeyCurrentNav:
		return func(a, b models.Holding) bool { return a.CurrentNav < b.CurrentNav }
	case models.SortKeyProfit:
		return func(a, b models.Holding) bool { return Valuate(a).Profit < Valuate(b).Profit }
	case models.SortKeyProfitRate:
		return func(a, b models.Holding) bool { return Valuate(a).ProfitRate < Valuate(b).ProfitRate }
	default: // marketValue
		return func(a, b models.Holding) bool { return Valuate(a).MarketValue < Valuate(b).MarketValue }
	}
}
