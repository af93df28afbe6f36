// file: internal/catalog/loader.go
// version: 1.0.0
// guid: 924b4e83-1395-42c1-8d4c-15cc8b7b0c39

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jdfalk/catalog-search/internal/models"
)

// Extensions lists the catalog file formats, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Source produces catalog snapshots.
type Source interface {
	Load(ctx context.Context) (*models.Catalog, error)
	String() string
}

// DirSource reads parts.*, colors.* and fuses.* from a directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a Source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (d *DirSource) String() string { return "dir:" + d.Dir }

// Load reads the three collections concurrently. A missing file yields an
// empty collection; a malformed one fails the whole load.
func (d *DirSource) Load(ctx context.Context) (*models.Catalog, error) {
	info, err := os.Stat(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", d.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog dir %s: not a directory", d.Dir)
	}

	cat := &models.Catalog{Source: d.String()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loadKind(gctx, d.Dir, models.KindParts, &cat.Parts) })
	g.Go(func() error { return loadKind(gctx, d.Dir, models.KindColors, &cat.Colors) })
	g.Go(func() error { return loadKind(gctx, d.Dir, models.KindFuses, &cat.Fuses) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat.LoadedAt = time.Now()
	log.Printf("[INFO] catalog: loaded %d parts, %d colors, %d fuses from %s",
		len(cat.Parts), len(cat.Colors), len(cat.Fuses), d.Dir)
	return cat, nil
}

// FindFile returns the first existing <kind><ext> file in dir, or "".
func FindFile(dir string, kind models.EntityKind) string {
	for _, ext := range Extensions {
		path := filepath.Join(dir, string(kind)+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadKind[T any](ctx context.Context, dir string, kind models.EntityKind, dst *[]T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := FindFile(dir, kind)
	if path == "" {
		log.Printf("[WARN] catalog: no %s file in %s, collection is empty", kind, dir)
		*dst = []T{}
		return nil
	}
	records, err := ReadFile[T](path)
	if err != nil {
		return err
	}
	*dst = records
	return nil
}

// ReadFile decodes a JSON or YAML array of records from path.
func ReadFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, err := Decode[T](data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ErrUnsupportedFormat is returned for file extensions other than Extensions.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Decode parses data according to ext (".json", ".yaml" or ".yml").
func Decode[T any](data []byte, ext string) ([]T, error) {
	records := []T{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// IsCatalogFile reports whether name looks like a catalog data file.
func IsCatalogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			for _, k := range models.AllKinds {
				if base == string(k) {
					return true
				}
			}
		}
	}
	return false
}
