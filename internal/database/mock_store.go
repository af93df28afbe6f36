// file: internal/database/mock_store.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package database

import (
	"context"
	"sync"

	"github.com/jdfalk/catalog-search/internal/models"
)

// MockStore is a simple mock implementation for testing commands and services.
// Unset funcs fall back to an in-memory copy of the last replaced catalog.
type MockStore struct {
	ReplaceCatalogFunc func(cat *models.Catalog) error
	LoadFunc           func(ctx context.Context) (*models.Catalog, error)
	CountFunc          func(kind models.EntityKind) (int, error)
	CloseFunc          func() error

	mu      sync.Mutex
	stored  *models.Catalog
	closed  bool
	Replace int
}

func (m *MockStore) ReplaceCatalog(cat *models.Catalog) error {
	m.mu.Lock()
	m.Replace++
	m.mu.Unlock()
	if m.ReplaceCatalogFunc != nil {
		return m.ReplaceCatalogFunc(cat)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cat
	m.stored = &cp
	return nil
}

func (m *MockStore) Load(ctx context.Context) (*models.Catalog, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored == nil {
		return &models.Catalog{Source: m.String()}, nil
	}
	cp := *m.stored
	cp.Source = m.String()
	return &cp, nil
}

func (m *MockStore) Count(kind models.EntityKind) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored.Count(kind), nil
}

func (m *MockStore) String() string { return "mock" }

func (m *MockStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Store = (*MockStore)(nil)
var _ Store = (*PebbleStore)(nil)
