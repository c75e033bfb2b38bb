// Package dialect holds the SQL fragments and parameter binding that differ
// between the supported databases.
package dialect

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect describes one database flavour.
type Dialect interface {
	// Name is the DB_DIALECT value.
	Name() string
	// DriverName is the database/sql driver registered for this dialect.
	DriverName() string
	// LimitClause is appended to a query that has no row limit of its own.
	LimitClause(n int) string
	// RowLimitMarkers are the substrings that indicate a query already limits its rows.
	RowLimitMarkers() []string
	PingQuery() string
	// PageClause skips and limits rows using the "skip" and "limit" parameters.
	PageClause() string
	// Param renders a reference to the named bind parameter.
	Param(name string) string
	// Bind turns named parameters into driver arguments.
	Bind(params map[string]any) []any
	MonthExpr(column string) string
	YearExpr(column string) string
	// RecentMonthsPredicate restricts column to the trailing twelve months.
	RecentMonthsPredicate(column string) string
	// ColumnsQuery lists column name, type, length and nullability (Y/N or YES/NO)
	// for the table bound to the "table_name" parameter.
	ColumnsQuery() string
}

var defaultMarkers = []string{"FETCH FIRST", "ROWNUM", "LIMIT"}

// New returns the dialect registered under name.
func New(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "oracle":
		return Oracle{}, nil
	case "postgres", "postgresql":
		return Postgres{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", name)
	}
}

// QuoteIdent double-quotes an identifier. Column names in the dataset carry
// spaces and accents, so every generated reference is quoted.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// namedArgs binds params as sql.NamedArg values in key order.
func namedArgs(params map[string]any) []any {
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, sql.Named(k, params[k]))
	}
	return args
}

// Oracle targets Oracle Database through go-ora.
type Oracle struct{}

func (Oracle) Name() string { return "oracle" }
func (Oracle) DriverName() string { return "oracle" }
func (Oracle) LimitClause(n int) string { return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n) }
func (Oracle) RowLimitMarkers() []string { return defaultMarkers }
func (Oracle) PingQuery() string { return "SELECT 1 FROM DUAL" }
func (Oracle) PageClause() string { return "OFFSET :skip ROWS FETCH NEXT :limit ROWS ONLY" }
func (Oracle) Param(name string) string { return ":" + name }
func (Oracle) Bind(p map[string]any) []any { return namedArgs(p) }

func (Oracle) MonthExpr(column string) string {
	return "EXTRACT(MONTH FROM " + QuoteIdent(column) + ")"
}

func (Oracle) YearExpr(column string) string {
	return "EXTRACT(YEAR FROM " + QuoteIdent(column) + ")"
}

func (Oracle) RecentMonthsPredicate(column string) string {
	return QuoteIdent(column) + " >= ADD_MONTHS(SYSDATE, -12)"
}

func (Oracle) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE, DATA_LENGTH, NULLABLE
FROM USER_TAB_COLUMNS
WHERE TABLE_NAME = :table_name
ORDER BY COLUMN_ID`
}

// Postgres targets PostgreSQL through pgx's database/sql adapter.
// Named parameters use pgx's @name syntax.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }
func (Postgres) DriverName() string { return "pgx" }
func (Postgres) LimitClause(n int) string { return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n) }
func (Postgres) RowLimitMarkers() []string { return defaultMarkers }
func (Postgres) PingQuery() string { return "SELECT 1" }
func (Postgres) PageClause() string { return "OFFSET @skip ROWS FETCH NEXT @limit ROWS ONLY" }
func (Postgres) Param(name string) string { return "@" + name }

func (Postgres) Bind(params map[string]any) []any {
	if len(params) == 0 {
		return nil
	}
	return []any{pgx.NamedArgs(params)}
}

func (Postgres) MonthExpr(column string) string {
	return "CAST(EXTRACT(MONTH FROM " + QuoteIdent(column) + ") AS INTEGER)"
}

func (Postgres) YearExpr(column string) string {
	return "CAST(EXTRACT(YEAR FROM " + QuoteIdent(column) + ") AS INTEGER)"
}

func (Postgres) RecentMonthsPredicate(column string) string {
	return QuoteIdent(column) + " >= CURRENT_DATE - INTERVAL '12 months'"
}

func (Postgres) ColumnsQuery() string {
	return `SELECT column_name, data_type, COALESCE(character_maximum_length, 0), is_nullable
FROM information_schema.columns
WHERE LOWER(table_name) = LOWER(@table_name)
ORDER BY ordinal_position`
}

// SQLite is used for local development and the integration tests.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite3" }
func (SQLite) LimitClause(n int) string { return fmt.Sprintf("LIMIT %d", n) }
func (SQLite) RowLimitMarkers() []string { return defaultMarkers }
func (SQLite) PingQuery() string { return "SELECT 1" }
func (SQLite) PageClause() string { return "LIMIT :limit OFFSET :skip" }
func (SQLite) Param(name string) string { return ":" + name }
func (SQLite) Bind(p map[string]any) []any { return namedArgs(p) }

func (SQLite) MonthExpr(column string) string {
	return "CAST(strftime('%m', " + QuoteIdent(column) + ") AS INTEGER)"
}

func (SQLite) YearExpr(column string) string {
	return "CAST(strftime('%Y', " + QuoteIdent(column) + ") AS INTEGER)"
}

func (SQLite) RecentMonthsPredicate(column string) string {
	return QuoteIdent(column) + " >= date('now', '-12 months')"
}

func (SQLite) ColumnsQuery() string {
	return `SELECT name, type, 0, CASE WHEN "notnull" = 0 THEN 'Y' ELSE 'N' END
FROM pragma_table_info(:table_name)
ORDER BY cid`
}
