package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[storage]
driver = "postgres"
seed_demo = true

[database]
host = "db"
port = 5433
user = "dooh"
dbname = "inventory"

[booking]
reserve_timeout_ms = 250

[lifecycle]
schedule = "*/30 * * * * *"

[cors]
allowed_origins = ["https://console.example.com"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DOOH_DB_PASSWORD", "secret")
	t.Setenv("DOOH_HTTP_PORT", "9191")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedDemo)
	assert.Equal(t, "host=db port=5433 user=dooh password=secret dbname=inventory sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, int64(250), cfg.Booking.ReserveTimeout().Milliseconds())
	assert.Equal(t, "*/30 * * * * *", cfg.Lifecycle.Schedule)
	assert.Equal(t, []string{"https://console.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[storage]\ndriver = \"redis\"\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad env integer", func(t *testing.T) {
		t.Setenv("DOOH_HTTP_PORT", "eighty")
		_, err := Load(writeConfig(t, ""))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"port out of range", func(c *Config) { c.Server.HTTPPort = 70000 }, false},
		{"postgres without db name", func(c *Config) { c.Storage.Driver = StoragePostgres }, false},
		{"zero reserve timeout", func(c *Config) { c.Booking.ReserveTimeoutMs = 0 }, false},
		{"empty schedule", func(c *Config) { c.Lifecycle.Schedule = " " }, false},
		{"lifecycle disabled", func(c *Config) { c.Lifecycle.Enabled = false; c.Lifecycle.Schedule = "" }, true},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }, false},
		{"metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
