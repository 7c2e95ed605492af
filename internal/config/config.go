// Package config loads portico's settings from a YAML (or JSON) file.
// Missing keys keep their defaults; secrets may also come from the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/portico/pkg/ticker"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "portico.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	Listen     string `yaml:"listen" json:"listen"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFormat  string `yaml:"log_format" json:"log_format"`
	CORSOrigin string `yaml:"cors_origin" json:"cors_origin"`

	Store   StoreConfig   `yaml:"store" json:"store"`
	Submit  SubmitConfig  `yaml:"submit" json:"submit"`
	Imaging ImagingConfig `yaml:"imaging" json:"imaging"`
	Form    FormConfig    `yaml:"form" json:"form"`
	Ticker  TickerConfig  `yaml:"ticker" json:"ticker"`
}

// StoreConfig selects where drafts are kept.
type StoreConfig struct {
	Driver        string        `yaml:"driver" json:"driver"`
	Path          string        `yaml:"path" json:"path"`
	RedisAddr     string        `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string        `yaml:"redis_password" json:"redis_password"`
	RedisDB       int           `yaml:"redis_db" json:"redis_db"`
	TTL           time.Duration `yaml:"ttl" json:"ttl"`
	// EncryptionKey is a base64 AES-256 key; empty disables encryption.
	EncryptionKey string   `yaml:"encryption_key" json:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// SubmitConfig points at the hosted form backend.
type SubmitConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	ContactEmail string        `yaml:"contact_email" json:"contact_email"`
}

// ImagingConfig tunes image resolution.
type ImagingConfig struct {
	Origin       string        `yaml:"origin" json:"origin"`
	StaticDir    string        `yaml:"static_dir" json:"static_dir"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" json:"probe_timeout"`
	Concurrency  int           `yaml:"concurrency" json:"concurrency"`
}

// FormConfig selects the form definition; empty means the embedded lead form.
type FormConfig struct {
	Definition string `yaml:"definition" json:"definition"`
}

// TickerConfig replaces the default feeds when Feeds is non-empty.
type TickerConfig struct {
	Feeds []ticker.Feed `yaml:"feeds" json:"feeds"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Listen:     ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		CORSOrigin: "*",
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   filepath.Join(".portico", "drafts"),
		},
		Submit: SubmitConfig{
			Timeout: 15 * time.Second,
		},
		Imaging: ImagingConfig{
			ProbeTimeout: 5 * time.Second,
			Concurrency:  4,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults,
// unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// ApplyEnv overrides secrets and endpoints from PORTICO_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, name string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	set(&c.Submit.Endpoint, "PORTICO_SUBMIT_ENDPOINT")
	set(&c.Submit.ContactEmail, "PORTICO_CONTACT_EMAIL")
	set(&c.Store.EncryptionKey, "PORTICO_ENCRYPTION_KEY")
	set(&c.Store.RedisAddr, "PORTICO_REDIS_ADDR")
	set(&c.Store.RedisPassword, "PORTICO_REDIS_PASSWORD")
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile, DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s driver", c.Store.Driver)
		}
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.Imaging.Concurrency < 0 {
		return errors.New("imaging.concurrency must not be negative")
	}
	return nil
}
