package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DitoluT/malackathon2025/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Supported values for DB_DIALECT.
const (
	DialectOracle   = "oracle"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// placeholder shipped in the example .env; treated as "no key".
const geminiKeyPlaceholder = "YOUR_GEMINI_API_KEY_HERE"

// OracleConfig holds the discrete connection settings used when DB_DSN is not given.
type OracleConfig struct {
	Host           string
	Port           int
	Service        string
	User           string
	Password       string
	WalletLocation string
}

// Config holds application configuration values
type Config struct {
	AppEnv     string
	Version    string
	ServerPort string
	APIPrefix  string

	DBDialect         string
	DBDSN             string
	Oracle            OracleConfig
	DBPoolMin         int
	DBPoolMax         int
	DBConnMaxLifetime time.Duration

	QueryMinLength int
	QueryMaxLength int
	QueryMaxLimit  int

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	DatasetMappingFile string
}

// AIEnabled reports whether an LLM credential is configured.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != geminiKeyPlaceholder
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Version:    getEnv("APP_VERSION", "1.0.0"),
		ServerPort: strings.TrimPrefix(getEnv("SERVER_PORT", "8000"), ":"),
		APIPrefix:  strings.TrimRight(getEnv("API_PREFIX", "/api/v1"), "/"),

		DBDialect: strings.ToLower(getEnv("DB_DIALECT", DialectOracle)),
		DBDSN:     getEnv("DB_DSN", ""),
		Oracle: OracleConfig{
			Host:           getEnv("ORACLE_HOST", ""),
			Port:           getEnvInt("ORACLE_PORT", 1522),
			Service:        getEnv("ORACLE_SERVICE", ""),
			User:           getEnv("ORACLE_USER", ""),
			Password:       getEnv("ORACLE_PASSWORD", ""),
			WalletLocation: getEnv("ORACLE_WALLET_LOCATION", ""),
		},
		DBPoolMin:         getEnvInt("DB_POOL_MIN", 2),
		DBPoolMax:         getEnvInt("DB_POOL_MAX", 10),
		DBConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,

		QueryMinLength: getEnvInt("QUERY_MIN_LENGTH", 10),
		QueryMaxLength: getEnvInt("QUERY_MAX_LENGTH", 5000),
		QueryMaxLimit:  getEnvInt("QUERY_MAX_LIMIT", 10000),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeout:    time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080,http://localhost:3000")),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		DatasetMappingFile: getEnv("DATASET_MAPPING_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.AIEnabled() {
		customLog.Warnln("GEMINI_API_KEY not set: AI insights will return the setup message.")
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, Dialect: %s, Pool: %d-%d",
		cfg.ServerPort, cfg.DBDialect, cfg.DBPoolMin, cfg.DBPoolMax)
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.DBDialect {
	case DialectOracle:
		if c.DBDSN == "" && (c.Oracle.Host == "" || c.Oracle.Service == "" || c.Oracle.User == "") {
			return errors.New("oracle dialect requires DB_DSN or ORACLE_HOST, ORACLE_SERVICE and ORACLE_USER")
		}
	case DialectPostgres, DialectSQLite:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN environment variable must be set for dialect %q", c.DBDialect)
		}
	default:
		return fmt.Errorf("unsupported DB_DIALECT %q (want oracle, postgres or sqlite)", c.DBDialect)
	}

	if c.DBPoolMin < 0 || c.DBPoolMax < 1 || c.DBPoolMin > c.DBPoolMax {
		return fmt.Errorf("invalid pool bounds: DB_POOL_MIN=%d DB_POOL_MAX=%d", c.DBPoolMin, c.DBPoolMax)
	}
	if c.QueryMinLength < 1 || c.QueryMaxLength < c.QueryMinLength {
		return fmt.Errorf("invalid query length bounds: %d-%d", c.QueryMinLength, c.QueryMaxLength)
	}
	if c.QueryMaxLimit < 1 {
		return fmt.Errorf("QUERY_MAX_LIMIT must be positive, got %d", c.QueryMaxLimit)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		customLog.Warnf("Invalid %s '%s'. Using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		customLog.Warnf("Invalid %s '%s'. Using default %v. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
