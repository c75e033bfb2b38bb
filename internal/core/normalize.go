package core

import (
	"strings"
	"time"
)

// Kind enumerates the scalar shapes a database cell can take.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	KindTemporal
	KindBinary
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTemporal:
		return "temporal"
	case KindBinary:
		return "binary"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is one database cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind     Kind
	Int      int64
	Float    float64
	Text     string
	Time     time.Time
	DateOnly bool
	Bytes    []byte
	Bool     bool
}

func Null() Value { return Value{Kind: KindNull} }
func Integer(v int64) Value { return Value{Kind: KindInteger, Int: v} }
func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func Text(v string) Value { return Value{Kind: KindText, Text: v} }
func Binary(v []byte) Value { return Value{Kind: KindBinary, Bytes: v} }
func Boolean(v bool) Value { return Value{Kind: KindBoolean, Bool: v} }
func Timestamp(v time.Time) Value { return Value{Kind: KindTemporal, Time: v} }
func Date(y int, m time.Month, d int) Value {
	return Value{Kind: KindTemporal, Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// DateValue marks t as a calendar date; only its year, month and day are rendered.
func DateValue(t time.Time) Value {
	return Value{Kind: KindTemporal, Time: t, DateOnly: true}
}

// ResultSet is what the database hands back: projection-ordered column
// names and rows aligned positionally to them.
type ResultSet struct {
	Columns []string
	Rows    [][]Value
}

// Record is a normalized row keyed by column name, holding only
// JSON-safe scalars (string, int64, float64, bool, nil).
type Record = map[string]any

// JSON converts v into its JSON-safe representation.
func (v Value) JSON() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindText:
		return v.Text
	case KindTemporal:
		if v.DateOnly {
			return v.Time.Format(time.DateOnly)
		}
		return v.Time.Format(time.RFC3339Nano)
	case KindBinary:
		return strings.ToValidUTF8(string(v.Bytes), "")
	case KindBoolean:
		return v.Bool
	default:
		return nil
	}
}

// Normalize turns rs into one Record per row, preserving row order and
// column names exactly.
func Normalize(rs *ResultSet) []Record {
	if rs == nil {
		return []Record{}
	}
	out := make([]Record, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		rec := make(Record, len(rs.Columns))
		for i, col := range rs.Columns {
			if i < len(row) {
				rec[col] = row[i].JSON()
			} else {
				rec[col] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}
