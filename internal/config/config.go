// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jdfalk/catalog-search/internal/matcher"
)

// Store types
const (
	StoreFile   = "file"
	StorePebble = "pebble"
)

// EnvPrefix is prepended to every environment override, e.g. CATALOG_SEARCH_PORT.
const EnvPrefix = "CATALOG_SEARCH"

// Config holds application configuration
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	StoreType    string        `yaml:"store_type"` // "file" (default) or "pebble"
	DatabasePath string        `yaml:"database_path"`
	WatchCatalog bool          `yaml:"watch_catalog"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`

	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int    `yaml:"rate_limit_burst"`
}

var AppConfig Config

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("store_type", StoreFile)
	viper.SetDefault("database_path", "catalog.pebble")
	viper.SetDefault("watch_catalog", false)
	viper.SetDefault("cache_ttl", "30s")
	viper.SetDefault("similarity_threshold", matcher.DefaultThreshold)
	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", "8080")
	viper.SetDefault("rate_limit_per_minute", 600)
	viper.SetDefault("rate_limit_burst", 50)
}

// InitConfig initializes the application configuration
func InitConfig() {
	SetDefaults()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	AppConfig = Config{
		DataDir:             viper.GetString("data_dir"),
		StoreType:           strings.ToLower(strings.TrimSpace(viper.GetString("store_type"))),
		DatabasePath:        viper.GetString("database_path"),
		WatchCatalog:        viper.GetBool("watch_catalog"),
		CacheTTL:            viper.GetDuration("cache_ttl"),
		SimilarityThreshold: viper.GetFloat64("similarity_threshold"),
		Host:                viper.GetString("host"),
		Port:                viper.GetString("port"),
		RateLimitPerMinute:  viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:      viper.GetInt("rate_limit_burst"),
	}

	if AppConfig.StoreType == "" {
		AppConfig.StoreType = StoreFile
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.StoreType {
	case StoreFile:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required when store_type is %q", StoreFile)
		}
	case StorePebble:
		if c.DatabasePath == "" {
			return fmt.Errorf("database_path is required when store_type is %q", StorePebble)
		}
	default:
		return fmt.Errorf("unknown store_type %q (want %q or %q)", c.StoreType, StoreFile, StorePebble)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be within [0, 1], got %v", c.SimilarityThreshold)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.RateLimitPerMinute < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	return nil
}
