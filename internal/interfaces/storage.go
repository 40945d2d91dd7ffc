// Package interfaces defines service contracts for SmartFund
package interfaces

import (
	"context"

	"github.com/smartfund/smartfund/internal/models"
)

// StorageManager coordinates the storage backends.
type StorageManager interface {
	HoldingStore() HoldingStore
	KeyValueStore() KeyValueStore

	// Lifecycle
	Close() error
}

// HoldingStore persists the holdings list as a single JSON blob under a
// fixed storage key. Writes are full-list overwrites; the last writer wins.
type HoldingStore interface {
	// GetAll returns all stored holdings. A missing key reads as an empty
	// list, not an error.
	GetAll(ctx context.Context) ([]models.Holding, error)

	// SaveAll overwrites the stored list with the given holdings.
	SaveAll(ctx context.Context, holdings []models.Holding) error

	// Add appends a holding and persists, returning the updated list.
	Add(ctx context.Context, holding models.Holding) ([]models.Holding, error)

	// Update applies a partial edit to the holding with the given id and
	// persists, returning the updated list. Unknown ids return
	// models.ErrHoldingNotFound.
	Update(ctx context.Context, id string, update models.HoldingUpdate) ([]models.Holding, error)

	// Remove deletes the holding with the given id and persists, returning
	// the updated list. Unknown ids return models.ErrHoldingNotFound.
	Remove(ctx context.Context, id string) ([]models.Holding, error)
}

// KeyValueStore is a simple string key-value store for system settings.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
