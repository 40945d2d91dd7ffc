package badger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/models"
)

// StorageKey is the fixed key the holdings blob lives under. The value is
// one JSON array of holding records; every write is a full-list overwrite.
const StorageKey = "smartfund_portfolio_v1"

type holdingStorage struct {
	store  *Store
	logger *common.Logger
}

// NewHoldingStorage creates a HoldingStore backed by BadgerHold.
func NewHoldingStorage(store *Store, logger *common.Logger) *holdingStorage {
	return &holdingStorage{store: store, logger: logger}
}

// GetAll returns all stored holdings. A missing key or empty blob reads as
// an empty list. Optional fields absent in older records stay empty.
func (s *holdingStorage) GetAll(_ context.Context) ([]models.Holding, error) {
	var entry KVEntry
	err := s.store.db.Get(StorageKey, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return []models.Holding{}, nil
		}
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}

	if entry.Value == "" {
		return []models.Holding{}, nil
	}

	var holdings []models.Holding
	if err := json.Unmarshal([]byte(entry.Value), &holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings blob: %w", err)
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	return holdings, nil
}

// SaveAll overwrites the stored list with the given holdings.
func (s *holdingStorage) SaveAll(_ context.Context, holdings []models.Holding) error {
	if holdings == nil {
		holdings = []models.Holding{}
	}

	data, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings: %w", err)
	}

	entry := KVEntry{Key: StorageKey, Value: string(data)}
	if err := s.store.db.Upsert(StorageKey, &entry); err != nil {
		return fmt.Errorf("failed to save holdings: %w", err)
	}

	s.logger.Debug().Int("count", len(holdings)).Msg("Holdings saved")
	return nil
}

// Add appends a holding and persists, returning the updated list.
func (s *holdingStorage) Add(ctx context.Context, holding models.Holding) ([]models.Holding, error) {
	current, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]models.Holding, 0, len(current)+1)
	updated = append(updated, current...)
	updated = append(updated, holding)

	if err := s.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Update applies a partial edit to the holding with the given id.
func (s *holdingStorage) Update(ctx context.Context, id string, update models.HoldingUpdate) ([]models.Holding, error) {
	current, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]models.Holding, len(current))
	found := false
	for i, h := range current {
		if h.ID == id {
			applyUpdate(&h, update)
			found = true
		}
		updated[i] = h
	}
	if !found {
		return nil, models.ErrHoldingNotFound
	}

	if err := s.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes the holding with the given id.
func (s *holdingStorage) Remove(ctx context.Context, id string) ([]models.Holding, error) {
	current, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]models.Holding, 0, len(current))
	found := false
	for _, h := range current {
		if h.ID == id {
			found = true
			continue
		}
		updated = append(updated, h)
	}
	if !found {
		return nil, models.ErrHoldingNotFound
	}

	if err := s.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func applyUpdate(h *models.Holding, update models.HoldingUpdate) {
	if update.Name != nil {
		h.Name = *update.Name
	}
	if update.CostPrice != nil {
		h.CostPrice = *update.CostPrice
	}
	if update.Shares != nil {
		h.Shares = *update.Shares
	}
	if update.CurrentNav != nil {
		h.CurrentNav = *update.CurrentNav
	}
	if update.Type != nil {
		h.Type = *update.Type
	}
	if update.RiskLevel != nil {
		h.RiskLevel = *update.RiskLevel
	}
}
