// file: internal/database/pebble_store.go
// version: 2.1.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package database

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"

	"github.com/jdfalk/catalog-search/internal/models"
)

// PebbleStore implements Store on PebbleDB.
//
// Key Schema:
// - parts:<seq>    -> Part JSON
// - colors:<seq>   -> ColorCode JSON
// - fuses:<seq>    -> Fuse JSON
// - meta:loaded_at -> RFC3339Nano time of the last ReplaceCatalog
//
// <seq> is a zero padded position so iteration returns records in the
// order they were written.
type PebbleStore struct {
	db   *pebble.DB
	path string

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

const metaLoadedAt = "meta:loaded_at"

// NewPebbleStore opens (or creates) a PebbleDB store at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{
		db:      db,
		path:    path,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (p *PebbleStore) String() string { return "pebble:" + p.path }

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

func recordKey(kind models.EntityKind, seq int) []byte {
	return []byte(fmt.Sprintf("%s:%010d", kind, seq))
}

// kindBounds covers every "<kind>:<digits>" key; ';' sorts after ':' and digits.
func kindBounds(kind models.EntityKind) (lower, upper []byte) {
	return []byte(string(kind) + ":"), []byte(string(kind) + ";")
}

func (p *PebbleStore) newID() string {
	p.idMu.Lock()
	defer p.idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
}

// ReplaceCatalog writes all three collections in one batch. Records in cat
// without an id are given a ULID in place.
func (p *PebbleStore) ReplaceCatalog(cat *models.Catalog) error {
	return p.ReplaceCatalogWithProgress(cat, nil)
}

// ReplaceCatalogWithProgress is ReplaceCatalog calling onRecord after each
// record is staged. Nothing is visible to readers until the final commit.
func (p *PebbleStore) ReplaceCatalogWithProgress(cat *models.Catalog, onRecord func()) error {
	if cat == nil {
		return fmt.Errorf("nil catalog")
	}
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, kind := range models.AllKinds {
		lower, upper := kindBounds(kind)
		if err := batch.DeleteRange(lower, upper, nil); err != nil {
			return fmt.Errorf("failed to clear %s: %w", kind, err)
		}
	}

	staged := func() {
		if onRecord != nil {
			onRecord()
		}
	}

	for i := range cat.Parts {
		if cat.Parts[i].ID == "" {
			cat.Parts[i].ID = p.newID()
		}
		if err := setJSON(batch, recordKey(models.KindParts, i), cat.Parts[i]); err != nil {
			return err
		}
		staged()
	}
	for i := range cat.Colors {
		if cat.Colors[i].ID == "" {
			cat.Colors[i].ID = p.newID()
		}
		if err := setJSON(batch, recordKey(models.KindColors, i), cat.Colors[i]); err != nil {
			return err
		}
		staged()
	}
	for i := range cat.Fuses {
		if cat.Fuses[i].ID == "" {
			cat.Fuses[i].ID = p.newID()
		}
		if err := setJSON(batch, recordKey(models.KindFuses, i), cat.Fuses[i]); err != nil {
			return err
		}
		staged()
	}

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := batch.Set([]byte(metaLoadedAt), []byte(stamp), nil); err != nil {
		return err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	log.Printf("[INFO] pebble: stored %d parts, %d colors, %d fuses",
		len(cat.Parts), len(cat.Colors), len(cat.Fuses))
	return nil
}

func setJSON(batch *pebble.Batch, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return batch.Set(key, data, nil)
}

// Load reads the stored catalog.
func (p *PebbleStore) Load(ctx context.Context) (*models.Catalog, error) {
	cat := &models.Catalog{Source: p.String()}
	var err error
	if cat.Parts, err = scanKind[models.Part](ctx, p.db, models.KindParts); err != nil {
		return nil, err
	}
	if cat.Colors, err = scanKind[models.ColorCode](ctx, p.db, models.KindColors); err != nil {
		return nil, err
	}
	if cat.Fuses, err = scanKind[models.Fuse](ctx, p.db, models.KindFuses); err != nil {
		return nil, err
	}

	value, closer, err := p.db.Get([]byte(metaLoadedAt))
	switch {
	case err == pebble.ErrNotFound:
		cat.LoadedAt = time.Now()
	case err != nil:
		return nil, err
	default:
		ts, perr := time.Parse(time.RFC3339Nano, string(value))
		closer.Close()
		if perr != nil {
			return nil, fmt.Errorf("bad %s value: %w", metaLoadedAt, perr)
		}
		cat.LoadedAt = ts
	}
	return cat, nil
}

func scanKind[T any](ctx context.Context, db *pebble.DB, kind models.EntityKind) ([]T, error) {
	lower, upper := kindBounds(kind)
	iter, err := db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := []T{}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", iter.Key(), err)
		}
		out = append(out, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
	}
	return out, nil
}

// Count returns how many records of kind are stored.
func (p *PebbleStore) Count(kind models.EntityKind) (int, error) {
	lower, upper := kindBounds(kind)
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return 0, err
	}
	defer iter.Close()
	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	return n, nil
}
