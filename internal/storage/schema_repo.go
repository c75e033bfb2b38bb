package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/domain"
)

// SchemaRepo answers catalog questions about the dataset table.
type SchemaRepo struct {
	pool    *Pool
	mapping dataset.Mapping
}

func NewSchemaRepo(pool *Pool, mapping dataset.Mapping) *SchemaRepo {
	return &SchemaRepo{pool: pool, mapping: mapping}
}

// TableSchema lists the columns of the dataset table in declaration order.
func (r *SchemaRepo) TableSchema(ctx context.Context) (*domain.TableSchema, error) {
	d := r.pool.dialect
	schema := &domain.TableSchema{TableName: r.mapping.Table, Columns: []domain.ColumnInfo{}}

	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, d.ColumnsQuery(), d.Bind(map[string]any{"table_name": r.mapping.Table})...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var col domain.ColumnInfo
			var length sql.NullInt64
			var nullable sql.NullString
			if err := rows.Scan(&col.Name, &col.DataType, &length, &nullable); err != nil {
				return err
			}
			col.DataLength = length.Int64
			col.Nullable = strings.HasPrefix(strings.ToUpper(nullable.String), "Y")
			schema.Columns = append(schema.Columns, col)
		}
		return rows.Err()
	})
	if err != nil {
		customLog.Warnf("Storage: Failed reading schema of '%s': %v", r.mapping.Table, err)
		return nil, &core.DatabaseError{Op: "schema", Err: err}
	}
	schema.TotalColumns = len(schema.Columns)
	return schema, nil
}

// CountRows returns the number of records in the dataset table.
func (r *SchemaRepo) CountRows(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", dialect.QuoteIdent(r.mapping.Table))
	var total int64
	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query).Scan(&total)
	})
	if err != nil {
		return 0, &core.DatabaseError{Op: "count", Err: err}
	}
	return total, nil
}

// Ping checks the database with the dialect's trivial query.
func (r *SchemaRepo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return &core.DatabaseError{Op: "ping", Err: err}
	}
	return nil
}
