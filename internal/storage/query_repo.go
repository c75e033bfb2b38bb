package storage

import (
	"context"
	"database/sql"

	"github.com/DitoluT/malackathon2025/internal/core"
)

// QueryRepo runs already-validated ad-hoc queries.
type QueryRepo struct {
	pool *Pool
}

func NewQueryRepo(pool *Pool) *QueryRepo {
	return &QueryRepo{pool: pool}
}

// Run executes query with params bound by the driver and returns the full result.
// Driver failures come back as *core.DatabaseError.
func (r *QueryRepo) Run(ctx context.Context, query string, params map[string]any) (*core.ResultSet, error) {
	var rs *core.ResultSet
	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, r.pool.dialect.Bind(params)...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rs, err = scanResultSet(rows)
		return err
	})
	if err != nil {
		customLog.Warnf("Storage: Ad-hoc query failed: %v", err)
		return nil, &core.DatabaseError{Op: "query", Err: err}
	}
	return rs, nil
}
