// Package storage provides the top-level StorageManager coordinating the
// BadgerHold-backed stores.
package storage

import (
	"fmt"

	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold
// database.
type Manager struct {
	store    *badger.Store
	holdings interfaces.HoldingStore
	kv       interfaces.KeyValueStore
	logger   *common.Logger
}

// NewManager opens the BadgerHold database and wires the stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().
		Str("path", config.Storage.Path).
		Msg("Storage manager initialized")

	return &Manager{
		store:    store,
		holdings: badger.NewHoldingStorage(store, logger),
		kv:       badger.NewKVStorage(store, logger),
		logger:   logger,
	}, nil
}

func (m *Manager) HoldingStore() interfaces.HoldingStore {
	return m.holdings
}

func (m *Manager) KeyValueStore() interfaces.KeyValueStore {
	return m.kv
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
