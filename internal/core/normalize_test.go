package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateAndBinary(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"A", "B"},
		Rows:    [][]Value{{Date(2024, time.January, 5), Binary([]byte{0x41, 0x42})}},
	}

	got := Normalize(rs)

	require.Len(t, got, 1)
	assert.Equal(t, Record{"A": "2024-01-05", "B": "AB"}, got[0])
}

func TestNormalizeScalarKinds(t *testing.T) {
	ts := time.Date(2023, time.March, 9, 14, 30, 5, 0, time.UTC)
	rs := &ResultSet{
		Columns: []string{"Estancia Días", "COSTE_APR", "NOMBRE", "UCI", "ALTA", "NOTA"},
		Rows: [][]Value{
			{Integer(12), Float(1520.75), Text("Paciente 1"), Boolean(true), Timestamp(ts), Null()},
		},
	}

	rec := Normalize(rs)[0]

	assert.Equal(t, int64(12), rec["Estancia Días"])
	assert.Equal(t, 1520.75, rec["COSTE_APR"])
	assert.Equal(t, "Paciente 1", rec["NOMBRE"])
	assert.Equal(t, true, rec["UCI"])
	assert.Equal(t, "2023-03-09T14:30:05Z", rec["ALTA"])
	assert.Contains(t, rec, "NOTA")
	assert.Nil(t, rec["NOTA"])
}

func TestNormalizeDropsInvalidUTF8(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"RAW"},
		Rows:    [][]Value{{Binary([]byte{'o', 'k', 0xff, 0xfe, '!'})}},
	}
	assert.Equal(t, "ok!", Normalize(rs)[0]["RAW"])
}

func TestNormalizePreservesOrderAndLength(t *testing.T) {
	rs := &ResultSet{Columns: []string{"N"}}
	for _, n := range []int64{5, 3, 9, 1} {
		rs.Rows = append(rs.Rows, []Value{Integer(n)})
	}

	got := Normalize(rs)

	require.Len(t, got, 4)
	for i, want := range []int64{5, 3, 9, 1} {
		assert.Equal(t, want, got[i]["N"])
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize(&ResultSet{Columns: []string{"A"}}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "temporal", KindTemporal.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
