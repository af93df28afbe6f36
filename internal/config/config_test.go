// file: internal/config/config_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/catalog-search/internal/matcher"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "data", AppConfig.DataDir)
	assert.Equal(t, StoreFile, AppConfig.StoreType)
	assert.Equal(t, "catalog.pebble", AppConfig.DatabasePath)
	assert.Equal(t, matcher.DefaultThreshold, AppConfig.SimilarityThreshold)
	assert.Equal(t, 30*time.Second, AppConfig.CacheTTL)
	assert.Equal(t, "8080", AppConfig.Port)
	assert.False(t, AppConfig.WatchCatalog)
	assert.NoError(t, AppConfig.Validate())
}

func TestInitConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("CATALOG_SEARCH_STORE_TYPE", "PEBBLE")
	t.Setenv("CATALOG_SEARCH_SIMILARITY_THRESHOLD", "0.8")
	t.Setenv("CATALOG_SEARCH_CACHE_TTL", "2m")

	InitConfig()

	assert.Equal(t, StorePebble, AppConfig.StoreType)
	assert.Equal(t, 0.8, AppConfig.SimilarityThreshold)
	assert.Equal(t, 2*time.Minute, AppConfig.CacheTTL)
}

func TestValidate(t *testing.T) {
	base := Config{DataDir: "data", StoreType: StoreFile, DatabasePath: "db", SimilarityThreshold: 0.6}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown store", func(c *Config) { c.StoreType = "sqlite" }, true},
		{"file without dir", func(c *Config) { c.DataDir = "" }, true},
		{"pebble without path", func(c *Config) { c.StoreType = StorePebble; c.DatabasePath = "" }, true},
		{"threshold too high", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"threshold negative", func(c *Config) { c.SimilarityThreshold = -0.1 }, true},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, true},
		{"negative rate", func(c *Config) { c.RateLimitBurst = -1 }, true},
		{"threshold bounds inclusive", func(c *Config) { c.SimilarityThreshold = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog-search.yaml")
	want := Config{
		DataDir:             "/srv/catalog",
		StoreType:           StorePebble,
		DatabasePath:        "/srv/catalog.pebble",
		WatchCatalog:        true,
		CacheTTL:            45 * time.Second,
		SimilarityThreshold: 0.7,
		Host:                "0.0.0.0",
		Port:                "9090",
		RateLimitPerMinute:  120,
		RateLimitBurst:      10,
	}
	require.NoError(t, SaveConfigFile(want, path, false))
	assert.Error(t, SaveConfigFile(want, path, false), "refuses to overwrite")
	require.NoError(t, SaveConfigFile(want, path, true))

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
	InitConfig()

	assert.Equal(t, want, AppConfig)
}
