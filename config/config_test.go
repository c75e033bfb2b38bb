package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DIALECT", "sqlite")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, DialectSQLite, cfg.DBDialect)
	assert.Equal(t, 2, cfg.DBPoolMin)
	assert.Equal(t, 10, cfg.DBPoolMax)
	assert.Equal(t, 10, cfg.QueryMinLength)
	assert.Equal(t, 5000, cfg.QueryMaxLength)
	assert.Equal(t, 10000, cfg.QueryMaxLimit)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Len(t, cfg.CORSOrigins, 3)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DIALECT", "POSTGRES")
	t.Setenv("DB_DSN", "postgres://localhost/health")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("API_PREFIX", "/v2/")
	t.Setenv("DB_POOL_MAX", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("GEMINI_API_KEY", "abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/v2", cfg.APIPrefix)
	assert.Equal(t, DialectPostgres, cfg.DBDialect)
	assert.Equal(t, 10, cfg.DBPoolMax, "invalid int falls back to default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.AIEnabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DBDialect:      DialectSQLite,
			DBDSN:          "x.db",
			DBPoolMin:      1,
			DBPoolMax:      2,
			QueryMinLength: 10,
			QueryMaxLength: 100,
			QueryMaxLimit:  10,
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid sqlite", func(*Config) {}, false},
		{"unknown dialect", func(c *Config) { c.DBDialect = "mysql" }, true},
		{"sqlite without dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"oracle discrete settings", func(c *Config) {
			c.DBDialect = DialectOracle
			c.DBDSN = ""
			c.Oracle = OracleConfig{Host: "adb.example", Service: "svc_high", User: "admin"}
		}, false},
		{"oracle missing host", func(c *Config) {
			c.DBDialect = DialectOracle
			c.DBDSN = ""
		}, true},
		{"pool min above max", func(c *Config) { c.DBPoolMin = 5 }, true},
		{"max length below min", func(c *Config) { c.QueryMaxLength = 5 }, true},
		{"zero max limit", func(c *Config) { c.QueryMaxLimit = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAIEnabledPlaceholder(t *testing.T) {
	cfg := &Config{GeminiAPIKey: geminiKeyPlaceholder}
	assert.False(t, cfg.AIEnabled())
}
