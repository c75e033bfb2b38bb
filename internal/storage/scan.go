package storage

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/DitoluT/malackathon2025/internal/core"
)

// scanResultSet drains rows into a ResultSet, converting each driver value
// with the help of the column's database type name.
func scanResultSet(rows *sql.Rows) (*core.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	dbTypes := make([]string, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			dbTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	rs := &core.ResultSet{Columns: columns, Rows: [][]core.Value{}}
	raw := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make([]core.Value, len(columns))
		for i, v := range raw {
			row[i] = toValue(v, dbTypes[i])
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return rs, nil
}

func isNumericType(dbType string) bool {
	switch dbType {
	case "NUMBER", "NUMERIC", "DECIMAL":
		return true
	}
	return false
}

// toValue maps a driver value onto the closed Value variant.
func toValue(v any, dbType string) core.Value {
	switch x := v.(type) {
	case nil:
		return core.Null()
	case int64:
		return core.Integer(x)
	case int32:
		return core.Integer(int64(x))
	case int:
		return core.Integer(int64(x))
	case uint64:
		if x > math.MaxInt64 {
			return core.Text(strconv.FormatUint(x, 10))
		}
		return core.Integer(int64(x))
	case float64:
		return core.Float(x)
	case float32:
		return core.Float(float64(x))
	case bool:
		return core.Boolean(x)
	case time.Time:
		if dbType == "DATE" && x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return core.DateValue(x)
		}
		return core.Timestamp(x)
	case []byte:
		if isNumericType(dbType) {
			if n, ok := parseNumber(string(x)); ok {
				return n
			}
		}
		return core.Binary(x)
	case string:
		if isNumericType(dbType) {
			if n, ok := parseNumber(x); ok {
				return n
			}
		}
		return core.Text(x)
	default:
		return core.Text(fmt.Sprint(x))
	}
}

func parseNumber(s string) (core.Value, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return core.Integer(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return core.Float(f), true
	}
	return core.Value{}, false
}

// cellString renders a grouping key for the typed aggregate records.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return strings.ToValidUTF8(string(x), "")
	case time.Time:
		return x.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
