// file: internal/database/store.go
// version: 2.0.0
// guid: 57ee6b96-cf4d-4d93-affe-9b04f8a01622

package database

import (
	"context"
	"fmt"

	"github.com/jdfalk/catalog-search/internal/models"
)

// Store persists catalog snapshots.
type Store interface {
	// ReplaceCatalog swaps the stored collections for the ones in cat.
	ReplaceCatalog(cat *models.Catalog) error
	// Load returns the stored catalog, collections in insertion order.
	Load(ctx context.Context) (*models.Catalog, error)
	// Count returns how many records of kind are stored.
	Count(kind models.EntityKind) (int, error)
	String() string
	Close() error
}

// OpenStore opens the store of the given type at path.
func OpenStore(storeType, path string) (Store, error) {
	switch storeType {
	case "pebble", "":
		store, err := NewPebbleStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: pebble)", storeType)
	}
}
