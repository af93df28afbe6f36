// file: internal/catalog/holder.go
// version: 1.1.0
// guid: a1a4aba4-493c-463d-97b2-afbd9909c090

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/jdfalk/catalog-search/internal/models"
)

// ErrNotLoaded is returned by Current before the first successful load.
var ErrNotLoaded = errors.New("catalog not loaded")

// ReloadFunc is called after every successful reload with the new snapshot.
type ReloadFunc func(cat *models.Catalog)

type snapshot struct {
	cat *models.Catalog
	gen uint64
}

// Holder publishes immutable catalog snapshots. Readers never block on a reload.
// Every published snapshot gets a new generation number.
type Holder struct {
	source   Source
	current  atomic.Pointer[snapshot]
	gen      atomic.Uint64
	reloadMu sync.Mutex

	mu        sync.RWMutex
	listeners []ReloadFunc
}

// NewHolder creates a Holder that loads from source.
func NewHolder(source Source) *Holder {
	return &Holder{source: source}
}

// Source returns where snapshots come from.
func (h *Holder) Source() Source {
	return h.source
}

// Current returns the latest snapshot.
func (h *Holder) Current() (*models.Catalog, error) {
	cat, _, err := h.Snapshot()
	return cat, err
}

// Snapshot returns the latest snapshot with its generation. Values derived
// from a snapshot can be keyed by the generation so they never outlive it.
func (h *Holder) Snapshot() (*models.Catalog, uint64, error) {
	s := h.current.Load()
	if s == nil {
		return nil, 0, ErrNotLoaded
	}
	return s.cat, s.gen, nil
}

// Set publishes cat directly, bypassing the source.
func (h *Holder) Set(cat *models.Catalog) {
	h.current.Store(&snapshot{cat: cat, gen: h.gen.Add(1)})
	h.notify(cat)
}

// OnReload registers fn to run after each successful reload.
func (h *Holder) OnReload(fn ReloadFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload loads a fresh snapshot from the source. On failure the previous
// snapshot stays in place.
func (h *Holder) Reload(ctx context.Context) (*models.Catalog, error) {
	if h.source == nil {
		return nil, fmt.Errorf("catalog holder has no source")
	}
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	cat, err := h.source.Load(ctx)
	if err != nil {
		log.Printf("[ERROR] catalog: reload from %s failed: %v", h.source, err)
		return nil, err
	}
	h.Set(cat)
	return cat, nil
}

func (h *Holder) notify(cat *models.Catalog) {
	h.mu.RLock()
	listeners := append([]ReloadFunc(nil), h.listeners...)
	h.mu.RUnlock()
	for _, fn := range listeners {
		fn(cat)
	}
}
