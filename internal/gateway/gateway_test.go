package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/storage"
	"github.com/DitoluT/malackathon2025/internal/storage/storagetest"
)

type fakeRunner struct {
	calls  int
	query  string
	params map[string]any
	result *core.ResultSet
	err    error
}

func (f *fakeRunner) Run(_ context.Context, query string, params map[string]any) (*core.ResultSet, error) {
	f.calls++
	f.query = query
	f.params = params
	return f.result, f.err
}

func rowsOf(n int) *core.ResultSet {
	rs := &core.ResultSet{Columns: []string{"N"}}
	for i := 0; i < n; i++ {
		rs.Rows = append(rs.Rows, []core.Value{core.Integer(int64(i))})
	}
	return rs
}

func TestExecuteOracleAppendsFetchFirst(t *testing.T) {
	runner := &fakeRunner{result: &core.ResultSet{
		Columns: []string{"TOTAL"},
		Rows:    [][]core.Value{{core.Integer(1234)}},
	}}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	res, err := gw.Execute(context.Background(), CandidateQuery{
		Query: "SELECT COUNT(*) AS total FROM ENFERMEDADESMENTALESDIAGNOSTICO;",
		Limit: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) AS total FROM ENFERMEDADESMENTALESDIAGNOSTICO\nFETCH FIRST 10 ROWS ONLY", res.QueryExecuted)
	assert.Equal(t, res.QueryExecuted, runner.query)
	assert.Equal(t, []string{"TOTAL"}, res.Columns)
	assert.Equal(t, []core.Record{{"TOTAL": int64(1234)}}, res.Data)
	assert.Equal(t, 1, res.RowsReturned)
	assert.Nil(t, res.Message)
}

func TestExecuteKeepsExistingRowLimit(t *testing.T) {
	testCases := []struct {
		name  string
		d     dialect.Dialect
		query string
	}{
		{"fetch first", dialect.Oracle{}, "SELECT * FROM T FETCH FIRST 5 ROWS ONLY"},
		{"rownum", dialect.Oracle{}, "SELECT * FROM T WHERE ROWNUM <= 5"},
		{"limit on sqlite", dialect.SQLite{}, "SELECT * FROM T LIMIT 5"},
		{"limit keyword on oracle", dialect.Oracle{}, "SELECT * FROM T limit 5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{result: rowsOf(0)}
			gw := New(core.DefaultQueryPolicy(), runner, tc.d, 10000)

			res, err := gw.Execute(context.Background(), CandidateQuery{Query: tc.query, Limit: 100})

			require.NoError(t, err)
			assert.Equal(t, tc.query, res.QueryExecuted)
		})
	}
}

func TestExecuteSQLiteAppendsLimit(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(0)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.SQLite{}, 10000)

	res, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM T"})

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM T\nLIMIT 100", res.QueryExecuted)
	assert.Empty(t, res.Data)
	assert.NotNil(t, res.Data)
}

func TestExecuteTruncationMessage(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(3)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	res, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT N FROM NUMBERS", Limit: 3})

	require.NoError(t, err)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Results limited to 3 rows. Use a more specific query or increase the limit.", *res.Message)
}

func TestExecuteRejectsWithoutRunning(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(1)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	_, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM T; DROP TABLE T", Limit: 10})

	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, core.ReasonForbiddenKeyword, vErr.Reason)
	assert.Equal(t, 0, runner.calls)
}

func TestExecuteLimitBounds(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(0)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	for _, limit := range []int{-1, 10001} {
		_, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM T", Limit: limit})
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr), "limit %d", limit)
		assert.Equal(t, core.ReasonInvalidLimit, vErr.Reason)
	}
	assert.Equal(t, 0, runner.calls)
}

func TestExecuteParams(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(0)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	_, err := gw.Execute(context.Background(), CandidateQuery{
		Query:  "SELECT NOMBRE FROM T WHERE EDAD > :edad AND SERVICIO = :servicio",
		Params: map[string]any{"edad": float64(50), "servicio": "PSIQUIATRÍA", "ratio": 0.5, "flag": nil},
		Limit:  10,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"edad": int64(50), "servicio": "PSIQUIATRÍA", "ratio": 0.5, "flag": nil}, runner.params)
	assert.NotContains(t, runner.query, "50", "parameters are never interpolated")
}

func TestExecuteRejectsNonScalarParams(t *testing.T) {
	runner := &fakeRunner{result: rowsOf(0)}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	_, err := gw.Execute(context.Background(), CandidateQuery{
		Query:  "SELECT NOMBRE FROM T WHERE EDAD IN (:edades)",
		Params: map[string]any{"edades": []any{1, 2}},
		Limit:  10,
	})

	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, core.ReasonInvalidParameter, vErr.Reason)
	assert.Equal(t, 0, runner.calls)
}

func TestExecuteWrapsRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("ORA-00942: table or view does not exist")}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.Oracle{}, 10000)

	_, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM MISSING", Limit: 10})

	var dbErr *core.DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "Database error: ORA-00942: table or view does not exist", dbErr.Detail())
	assert.Equal(t, 1, runner.calls)
}

func TestExecutePassesDatabaseErrorThrough(t *testing.T) {
	orig := &core.DatabaseError{Op: "query", Err: errors.New("boom")}
	runner := &fakeRunner{err: orig}
	gw := New(core.DefaultQueryPolicy(), runner, dialect.SQLite{}, 10000)

	_, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM T", Limit: 10})

	assert.Same(t, orig, err)
}

func TestExecuteLimitSurvivesTrailingLineComment(t *testing.T) {
	testCases := []struct {
		name string
		d    dialect.Dialect
		want string
	}{
		{"oracle", dialect.Oracle{}, "SELECT * FROM T -- every row\nFETCH FIRST 5 ROWS ONLY"},
		{"sqlite", dialect.SQLite{}, "SELECT * FROM T -- every row\nLIMIT 5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{result: rowsOf(0)}
			gw := New(core.DefaultQueryPolicy(), runner, tc.d, 10000)

			res, err := gw.Execute(context.Background(), CandidateQuery{Query: "SELECT * FROM T -- every row", Limit: 5})

			require.NoError(t, err)
			assert.Equal(t, tc.want, res.QueryExecuted)
		})
	}
}

func TestExecuteTrailingCommentStaysBoundedOnSQLite(t *testing.T) {
	pool := storagetest.NewPool(t)
	gw := New(core.DefaultQueryPolicy(), storage.NewQueryRepo(pool), pool.Dialect(), 10000)

	res, err := gw.Execute(context.Background(), CandidateQuery{
		Query: "SELECT * FROM ENFERMEDADESMENTALESDIAGNOSTICO -- all rows",
		Limit: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsReturned)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Results limited to 1 rows. Use a more specific query or increase the limit.", *res.Message)
}
