package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// APPLICATION CONFIG
// ============================================================================
// YAML file with environment-variable overrides. Every field has a
// working default, so running without a config file is fully supported.
// ============================================================================

const defaultUploadLimitMB = 100

type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	UploadLimitMB int64  `yaml:"upload_limit_mb"`

	TopVendors      int    `yaml:"top_vendors"`
	OtherLabel      string `yaml:"other_label"`
	DefaultCurrency string `yaml:"default_currency"`

	DistinctThreshold      int      `yaml:"distinct_threshold"`
	HighCardinalityColumns []string `yaml:"high_cardinality_columns"`

	DefaultPageSize int `yaml:"default_page_size"`
}

// Default returns the configuration used when no file or overrides are
// present.
func Default() Config {
	return Config{
		ListenAddr:        ":8080",
		UploadLimitMB:     defaultUploadLimitMB,
		TopVendors:        10,
		OtherLabel:        "Other Vendors",
		DefaultCurrency:   "INR",
		DistinctThreshold: 15,
		DefaultPageSize:   50,
	}
}

// Load reads configuration from path, falling back to defaults for
// anything unset. An empty path skips the file and returns defaults
// plus environment overrides; a named file that cannot be read or
// parsed is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	envOverride(&cfg.ListenAddr, "LEDGERLENS_ADDR")
	envOverride(&cfg.DefaultCurrency, "LEDGERLENS_DEFAULT_CURRENCY")
	if v := os.Getenv("LEDGERLENS_UPLOAD_LIMIT_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.UploadLimitMB = n
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize pulls zero or nonsense values back to defaults so the rest
// of the program never re-checks them.
func (c *Config) normalize() {
	def := Default()
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.UploadLimitMB <= 0 {
		c.UploadLimitMB = def.UploadLimitMB
	}
	if c.TopVendors <= 0 {
		c.TopVendors = def.TopVendors
	}
	if c.OtherLabel == "" {
		c.OtherLabel = def.OtherLabel
	}
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = def.DefaultCurrency
	}
	if c.DistinctThreshold <= 0 {
		c.DistinctThreshold = def.DistinctThreshold
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = def.DefaultPageSize
	}
}

// UploadLimitBytes is the multipart memory/read cap in bytes.
func (c Config) UploadLimitBytes() int64 {
	return c.UploadLimitMB << 20
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
