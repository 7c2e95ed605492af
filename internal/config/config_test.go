package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/portico/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "none.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portico.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
store:
  driver: redis
  redis_addr: localhost:6379
  ttl: 72h
submit:
  endpoint: https://forms.example/f/abc
  timeout: 5s
ticker:
  feeds:
    - name: news
      messages: ["hello"]
      interval: 2s
`), 0o600))

	cfg, err := config.Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep defaults")
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 72*time.Hour, cfg.Store.TTL)
	assert.Equal(t, 5*time.Second, cfg.Submit.Timeout)
	assert.Equal(t, 4, cfg.Imaging.Concurrency)
	require.Len(t, cfg.Ticker.Feeds, 1)
	assert.Equal(t, 2*time.Second, cfg.Ticker.Feeds[0].Interval)
	require.NoError(t, cfg.Validate())
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portico.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"listen":":7070","store":{"driver":"memory"}}`), 0o600))

	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portico.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))

	_, err := config.Load(path, false)
	assert.ErrorContains(t, err, "portico.yaml")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORTICO_SUBMIT_ENDPOINT": "https://forms.example/f/env",
		"PORTICO_ENCRYPTION_KEY":  "a2V5",
	}
	cfg := config.Default()
	cfg.Submit.ContactEmail = "kept@example.com"
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "https://forms.example/f/env", cfg.Submit.Endpoint)
	assert.Equal(t, "a2V5", cfg.Store.EncryptionKey)
	assert.Equal(t, "kept@example.com", cfg.Submit.ContactEmail)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"default", func(*config.Config) {}, true},
		{"unknown driver", func(c *config.Config) { c.Store.Driver = "mongo" }, false},
		{"redis without addr", func(c *config.Config) { c.Store.Driver = config.DriverRedis }, false},
		{"sqlite without path", func(c *config.Config) { c.Store.Driver = config.DriverSQLite; c.Store.Path = "" }, false},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, false},
		{"memory", func(c *config.Config) { c.Store.Driver = config.DriverMemory; c.Store.Path = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if tc.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
