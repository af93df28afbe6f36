// file: internal/config/persistence.go
// version: 2.0.0
// guid: 9c8d7e6f-5a4b-3c2d-1e0f-9a8b7c6d5e4f

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up in the home directory.
const DefaultConfigName = ".catalog-search"

// DefaultConfigPath returns $HOME/.catalog-search.yaml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigName+".yaml")
}

// Marshal renders c as the YAML document viper reads back.
func (c Config) Marshal() ([]byte, error) {
	doc := map[string]any{
		"data_dir":              c.DataDir,
		"store_type":            c.StoreType,
		"database_path":         c.DatabasePath,
		"watch_catalog":         c.WatchCatalog,
		"cache_ttl":             c.CacheTTL.String(),
		"similarity_threshold":  c.SimilarityThreshold,
		"host":                  c.Host,
		"port":                  c.Port,
		"rate_limit_per_minute": c.RateLimitPerMinute,
		"rate_limit_burst":      c.RateLimitBurst,
	}
	return yaml.Marshal(doc)
}

// SaveConfigFile writes c to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func SaveConfigFile(c Config, path string, overwrite bool) error {
	if path == "" {
		return fmt.Errorf("no config path")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	log.Printf("[INFO] config: wrote %s", path)
	return nil
}
