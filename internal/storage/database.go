// internal/storage/database.go
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver registration ("pgx")
	_ "github.com/mattn/go-sqlite3"    // Driver registration ("sqlite3")
	go_ora "github.com/sijms/go-ora/v2"

	"github.com/DitoluT/malackathon2025/config"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/domain"
	"github.com/DitoluT/malackathon2025/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Pool is the process-wide connection pool. Every operation borrows one
// connection for its duration and returns it when done, on success or failure.
type Pool struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// NewPool wraps an already opened *sql.DB.
func NewPool(db *sql.DB, d dialect.Dialect) *Pool {
	return &Pool{db: db, dialect: d}
}

// Connect opens the pool described by cfg and verifies it with the dialect's ping query.
func Connect(ctx context.Context, cfg *config.Config, d dialect.Dialect) (*Pool, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	customLog.Printf("Storage: Opening %s pool (min %d, max %d)", d.Name(), cfg.DBPoolMin, cfg.DBPoolMax)

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		customLog.Warnf("Storage: Failed to open %s database: %v", d.Name(), err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBPoolMax)
	db.SetMaxIdleConns(cfg.DBPoolMin)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pool := NewPool(db, d)
	if err := pool.Ping(ctx); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping %s database: %v", d.Name(), err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	customLog.Println("Storage: Database connection successful.")
	return pool, nil
}

// BuildDSN returns DB_DSN when set. For Oracle without a DSN the URL is
// assembled from the discrete ORACLE_* settings; a wallet location turns on TLS.
func BuildDSN(cfg *config.Config) (string, error) {
	if cfg.DBDSN != "" {
		return cfg.DBDSN, nil
	}
	if cfg.DBDialect != config.DialectOracle {
		return "", fmt.Errorf("DB_DSN is required for dialect %q", cfg.DBDialect)
	}
	o := cfg.Oracle
	options := map[string]string{}
	if o.WalletLocation != "" {
		options["SSL"] = "enable"
		options["SSL VERIFY"] = "false"
		options["WALLET"] = o.WalletLocation
	}
	return go_ora.BuildUrl(o.Host, o.Port, o.Service, o.User, o.Password, options), nil
}

// Dialect returns the SQL flavour of the pool.
func (p *Pool) Dialect() dialect.Dialect { return p.dialect }

// WithConn runs fn on one connection taken from the pool and releases it afterwards.
func (p *Pool) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// Ping runs the dialect's trivial query on a pooled connection.
func (p *Pool) Ping(ctx context.Context) error {
	return p.WithConn(ctx, func(conn *sql.Conn) error {
		var one int
		return conn.QueryRowContext(ctx, p.dialect.PingQuery()).Scan(&one)
	})
}

// Stats reports pool counters.
func (p *Pool) Stats() domain.PoolStats {
	s := p.db.Stats()
	return domain.PoolStats{
		MaxOpen: s.MaxOpenConnections,
		Open:    s.OpenConnections,
		InUse:   s.InUse,
		Idle:    s.Idle,
	}
}

// Close releases every connection. Called once on shutdown.
func (p *Pool) Close() error {
	customLog.Println("Storage: Closing database pool...")
	return p.db.Close()
}
