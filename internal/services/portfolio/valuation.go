// Package portfolio manages fund holdings and their derived figures.
package portfolio

import "github.com/smartfund/smartfund/internal/models"

// Valuate computes the derived figures for one holding. Pure function of
// its inputs; recomputed on every query, never cached.
//
// A zero cost price makes the profit rate undefined (division by cost);
// it is reported as 0 so callers never see a non-finite value. The entry
// gate prevents zero-cost holdings from being created in the first place.
func Valuate(h models.Holding) models.HoldingValuation {
	marketValue := h.Shares * h.CurrentNav
	costValue := h.Shares * h.CostPrice

	var profitRate float64
	if h.CostPrice > 0 {
		profitRate = (h.CurrentNav - h.CostPrice) / h.CostPrice * 100
	}

	return models.HoldingValuation{
		MarketValue: marketValue,
		CostValue:   costValue,
		Profit:      marketValue - costValue,
		ProfitRate:  profitRate,
	}
}

// Aggregate computes portfolio totals across all holdings. The profit rate
// of an empty or zero-cost portfolio is 0, not NaN.
func Aggregate(holdings []models.Holding) models.PortfolioStats {
	var stats models.PortfolioStats
	for _, h := range holdings {
		stats.TotalCost += h.Shares * h.CostPrice
		stats.TotalValue += h.Shares * h.CurrentNav
	}
	stats.TotalProfit = stats.TotalValue - stats.TotalCost
	if stats.TotalCost > 0 {
		stats.ProfitRate = stats.TotalProfit / stats.TotalCost * 100
	}
	return stats
}

// Allocation computes each holding's share of total market value.
func Allocation(holdings []models.Holding) []models.AllocationSlice {
	var total float64
	for _, h := range holdings {
		total += h.Shares * h.CurrentNav
	}

	slices := make([]models.AllocationSlice, 0, len(holdings))
	for _, h := range holdings {
		value := h.Shares * h.CurrentNav
		slice := models.AllocationSlice{
			Code:  h.Code,
			Name:  h.Name,
			Value: value,
		}
		if total > 0 {
			slice.WeightPct = value / total * 100
		}
		slices = append(slices, slice)
	}
	return slices
}
