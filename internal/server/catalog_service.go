// file: internal/server/catalog_service.go
// version: 1.1.0
// guid: 3e5b8f0a-6c1d-4f27-9a84-2d7e1b9c5f36

package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jdfalk/catalog-search/internal/cache"
	"github.com/jdfalk/catalog-search/internal/catalog"
	"github.com/jdfalk/catalog-search/internal/metrics"
	"github.com/jdfalk/catalog-search/internal/models"
	"github.com/jdfalk/catalog-search/internal/search"
)

// maxCachedResults bounds the search cache; see cache.NewBounded.
const maxCachedResults = 1024

// CatalogService runs searches and suggestions against the current catalog
// snapshot and caches their results until the next reload.
type CatalogService struct {
	holder  *catalog.Holder
	engine  search.Engine
	results *cache.Cache[search.Envelope]
	suggest *cache.Cache[[]string]

	// beforeCache runs between computing a result and caching it. Tests use it
	// to reload the catalog in that window.
	beforeCache func()
}

// NewCatalogService creates a service over holder. A zero cacheTTL disables caching.
func NewCatalogService(holder *catalog.Holder, engine search.Engine, cacheTTL time.Duration) *CatalogService {
	cs := &CatalogService{
		holder:  holder,
		engine:  engine,
		results: cache.NewBounded[search.Envelope](cacheTTL, maxCachedResults),
		suggest: cache.NewBounded[[]string](cacheTTL, maxCachedResults),
	}
	holder.OnReload(func(cat *models.Catalog) {
		cs.InvalidateCache()
		for _, kind := range models.AllKinds {
			metrics.SetCatalogRecords(string(kind), cat.Count(kind))
		}
	})
	if cat, err := holder.Current(); err == nil {
		for _, kind := range models.AllKinds {
			metrics.SetCatalogRecords(string(kind), cat.Count(kind))
		}
	}
	return cs
}

// Search returns the filtered, fuzzy-matched records of kind.
func (cs *CatalogService) Search(kind models.EntityKind, rawQuery string, filters search.Filters, requestID string) (search.Envelope, error) {
	logger := NewServiceLogger("CatalogService", requestID)
	cat, gen, err := cs.holder.Snapshot()
	if err != nil {
		return search.Envelope{}, err
	}
	metrics.IncSearch(string(kind))

	key := cache.SearchKey("search", gen, string(kind), rawQuery, filters)
	if env, ok := cs.results.Get(key); ok {
		metrics.IncCacheHit()
		logger.LogDebug("Search", "cache hit "+key)
		// The key ignores empty filter values, so echo this request's filters.
		env.Filters = filters
		return env, nil
	}
	metrics.IncCacheMiss()

	start := time.Now()
	env, err := cs.engine.SearchCatalog(cat, kind, rawQuery, filters)
	if err != nil {
		logger.LogError("Search", err)
		return search.Envelope{}, err
	}
	metrics.ObserveSearch(string(kind), env.Total, time.Since(start))
	logger.LogOperation("Search", map[string]any{
		"kind":    kind,
		"query":   rawQuery,
		"filters": filters.String(),
		"total":   env.Total,
	})

	cs.runBeforeCache()
	cs.results.Set(key, env)
	return env, nil
}

// Suggest returns autocomplete strings for kind.
func (cs *CatalogService) Suggest(kind models.EntityKind, rawQuery string, requestID string) ([]string, error) {
	cat, gen, err := cs.holder.Snapshot()
	if err != nil {
		return nil, err
	}
	metrics.IncSuggest(string(kind))

	key := cache.SearchKey("suggest", gen, string(kind), rawQuery, nil)
	if out, ok := cs.suggest.Get(key); ok {
		metrics.IncCacheHit()
		return out, nil
	}
	metrics.IncCacheMiss()

	out, err := search.SuggestCatalog(cat, kind, rawQuery)
	if err != nil {
		NewServiceLogger("CatalogService", requestID).LogError("Suggest", err)
		return nil, err
	}
	cs.runBeforeCache()
	cs.suggest.Set(key, out)
	return out, nil
}

func (cs *CatalogService) runBeforeCache() {
	if cs.beforeCache != nil {
		cs.beforeCache()
	}
}

// Stats returns record counts for the current snapshot.
func (cs *CatalogService) Stats() (models.CatalogStats, error) {
	cat, err := cs.holder.Current()
	if err != nil {
		return models.CatalogStats{}, err
	}
	return cat.Stats(), nil
}

// Reload replaces the snapshot from the holder's source.
func (cs *CatalogService) Reload(ctx context.Context, requestID string) (models.CatalogStats, error) {
	logger := NewServiceLogger("CatalogService", requestID)
	cat, err := cs.holder.Reload(ctx)
	metrics.IncReload(err == nil)
	if err != nil {
		logger.LogError("Reload", err)
		return models.CatalogStats{}, err
	}
	stats := cat.Stats()
	logger.LogOperation("Reload", map[string]any{
		"parts":  stats.Parts,
		"colors": stats.Colors,
		"fuses":  stats.Fuses,
	})
	return stats, nil
}

// InvalidateCache drops all cached search and suggestion results.
func (cs *CatalogService) InvalidateCache() {
	n := cs.results.InvalidateAll() + cs.suggest.InvalidateAll()
	if n > 0 {
		NewServiceLogger("CatalogService", "").LogDebug("InvalidateCache", fmt.Sprintf("dropped %d cached results", n))
	}
}

// IsNotLoaded reports whether err means no catalog snapshot exists yet.
func IsNotLoaded(err error) bool {
	return errors.Is(err, catalog.ErrNotLoaded)
}
