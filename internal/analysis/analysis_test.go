package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/gateway"
	"github.com/DitoluT/malackathon2025/internal/insight"
)

type fakeExecutor struct {
	got    gateway.CandidateQuery
	result *gateway.Result
	err    error
}

func (f *fakeExecutor) Execute(_ context.Context, cq gateway.CandidateQuery) (*gateway.Result, error) {
	f.got = cq
	return f.result, f.err
}

type stubCompleter struct{ text string }

func (s stubCompleter) Complete(context.Context, string) (string, error) { return s.text, nil }

func diagnosisResult(n int) *gateway.Result {
	res := &gateway.Result{Columns: []string{"CATEGORIA", "TOTAL"}, QueryExecuted: "SELECT CATEGORIA, TOTAL FROM V FETCH FIRST 100 ROWS ONLY"}
	for i := 0; i < n; i++ {
		res.Data = append(res.Data, core.Record{"CATEGORIA": "C", "TOTAL": int64(i + 1)})
	}
	res.RowsReturned = len(res.Data)
	return res
}

func TestAnalyze(t *testing.T) {
	exec := &fakeExecutor{result: diagnosisResult(30)}
	svc := NewService(exec, insight.NewGenerator(stubCompleter{text: "Mood disorders dominate."}))

	report, err := svc.Analyze(context.Background(), Request{Query: "SELECT CATEGORIA, TOTAL FROM V", Question: "why?"})

	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, exec.got.Limit)
	assert.True(t, report.Success)
	assert.Equal(t, 30, report.RowsAnalyzed)
	assert.Len(t, report.DataSample, SampleSize)
	assert.Equal(t, "Mood disorders dominate.", report.AIInsight)
	assert.Equal(t, exec.result.QueryExecuted, report.QueryExecuted)

	require.Contains(t, report.Statistics.Columns, "TOTAL")
	assert.NotContains(t, report.Statistics.Columns, "CATEGORIA")
	assert.Equal(t, 15.5, *report.Statistics.Columns["TOTAL"].Mean)
	assert.Equal(t, 1, report.Statistics.UniqueCategories)
}

func TestAnalyzeEmptyResult(t *testing.T) {
	exec := &fakeExecutor{result: diagnosisResult(0)}
	svc := NewService(exec, insight.NewGenerator(nil))

	_, err := svc.Analyze(context.Background(), Request{Query: "SELECT CATEGORIA, TOTAL FROM V", Limit: 5})

	assert.ErrorIs(t, err, core.ErrEmptyResult)
	assert.Equal(t, 5, exec.got.Limit)
}

func TestAnalyzeLimitBounds(t *testing.T) {
	svc := NewService(&fakeExecutor{result: diagnosisResult(1)}, insight.NewGenerator(nil))

	_, err := svc.Analyze(context.Background(), Request{Query: "SELECT CATEGORIA, TOTAL FROM V", Limit: MaxLimit + 1})

	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, core.ReasonInvalidLimit, vErr.Reason)
}

func TestAnalyzeExecutorError(t *testing.T) {
	want := &core.DatabaseError{Op: "query", Err: errors.New("ORA-00904")}
	svc := NewService(&fakeExecutor{err: want}, insight.NewGenerator(nil))

	_, err := svc.Analyze(context.Background(), Request{Query: "SELECT X FROM V"})

	assert.Same(t, want, err)
}

func TestAnalyzeDisabledInsightStillSucceeds(t *testing.T) {
	svc := NewService(&fakeExecutor{result: diagnosisResult(2)}, insight.NewGenerator(nil))

	report, err := svc.Analyze(context.Background(), Request{Query: "SELECT CATEGORIA, TOTAL FROM V"})

	require.NoError(t, err)
	assert.Equal(t, insight.DisabledMessage, report.AIInsight)
	assert.Len(t, report.DataSample, 2)
}
