package models

// SortKey selects the holding field (raw or derived) a list is ordered by.
type SortKey string

const (
	SortKeyName        SortKey = "name"
	SortKeyShares      SortKey = "shares"
	SortKeyCurrentNav  SortKey = "currentNav"
	SortKeyMarketValue SortKey = "marketValue"
	SortKeyProfit      SortKey = "profit"
	SortKeyProfitRate  SortKey = "profitRate"
)

// SortDirection orders ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ValidSortKey reports whether key names a sortable field.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortKeyName, SortKeyShares, SortKeyCurrentNav,
		SortKeyMarketValue, SortKeyProfit, SortKeyProfitRate:
		return true
	}
	return false
}

// SortConfig is the current sort state of a holdings view.
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Toggle returns the next sort state for a key selection: selecting the
// current key flips direction, selecting a new key resets to descending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == SortDesc {
		return SortConfig{Key: key, Direction: SortAsc}
	}
	return SortConfig{Key: key, Direction: SortDesc}
}
