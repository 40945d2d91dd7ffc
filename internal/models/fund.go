// Package models defines data structures for SmartFund
package models

import "time"

// Holding represents one owned fund position.
// Field names match the persisted JSON layout; Type and RiskLevel are
// optional and must be tolerated as absent when reading stored data.
type Holding struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	CostPrice  float64   `json:"costPrice"`  // average purchase NAV per share
	Shares     float64   `json:"shares"`     // quantity held
	CurrentNav float64   `json:"currentNav"` // latest known per-share value
	LastUpdate time.Time `json:"lastUpdate"`
	Type       string    `json:"type,omitempty"`      // e.g. "Mixed", "Equity"
	RiskLevel  string    `json:"riskLevel,omitempty"` // e.g. "High", "Medium"
}

// HoldingUpdate carries a partial edit to an existing holding.
// Nil fields are left unchanged.
type HoldingUpdate struct {
	Name       *string  `json:"name,omitempty"`
	CostPrice  *float64 `json:"costPrice,omitempty"`
	Shares     *float64 `json:"shares,omitempty"`
	CurrentNav *float64 `json:"currentNav,omitempty"`
	Type       *string  `json:"type,omitempty"`
	RiskLevel  *string  `json:"riskLevel,omitempty"`
}

// HoldingValuation holds per-holding derived figures. Computed on demand,
// never persisted.
type HoldingValuation struct {
	MarketValue float64 `json:"market_value"`
	CostValue   float64 `json:"cost_value"`
	Profit      float64 `json:"profit"`
	ProfitRate  float64 `json:"profit_rate"` // percent
}

// PortfolioStats holds aggregate figures across all holdings. Computed on
// demand, never persisted.
type PortfolioStats struct {
	TotalCost   float64 `json:"total_cost"`
	TotalValue  float64 `json:"total_value"`
	TotalProfit float64 `json:"total_profit"`
	ProfitRate  float64 `json:"profit_rate"` // percent; 0 for an empty or zero-cost portfolio
}

// AllocationSlice is one holding's share of total portfolio value.
type AllocationSlice struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	WeightPct float64 `json:"weight_pct"`
}

// NavQuote is one fund's refreshed NAV as returned by a batch price lookup.
type NavQuote struct {
	Code string  `json:"code"`
	Nav  float64 `json:"nav"`
}

// FundLookupResult is the best-match fund identity for a free-text query.
type FundLookupResult struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Nav  float64 `json:"nav"`
	Date string  `json:"date"` // YYYY-MM-DD
}

// ScreenCriteria filters candidate funds for screening.
type ScreenCriteria struct {
	Type      string `json:"type"`
	Risk      string `json:"risk"`
	MinReturn string `json:"minReturn,omitempty"`
	Company   string `json:"company,omitempty"`
}

// FundRecommendation is one ephemeral screening result. Not persisted.
type FundRecommendation struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	ReturnRate1Y string `json:"returnRate1Y,omitempty"`
	Risk         string `json:"risk,omitempty"`
	Reason       string `json:"reason"`
}
