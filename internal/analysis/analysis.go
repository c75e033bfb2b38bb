// Package analysis runs a query and describes its result: statistics over
// the numeric columns plus an AI narrative.
package analysis

import (
	"context"
	"fmt"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/gateway"
	"github.com/DitoluT/malackathon2025/internal/insight"
	"github.com/DitoluT/malackathon2025/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
	// SampleSize caps data_sample in the response.
	SampleSize = 20
)

// Executor is satisfied by *gateway.Gateway.
type Executor interface {
	Execute(ctx context.Context, cq gateway.CandidateQuery) (*gateway.Result, error)
}

// Request is one analysis job.
type Request struct {
	Query    string
	Params   map[string]any
	Limit    int
	Question string
}

// Report is the analysis response body.
type Report struct {
	Success       bool          `json:"success"`
	Statistics    core.Summary  `json:"statistics"`
	AIInsight     string        `json:"ai_insight"`
	DataSample    []core.Record `json:"data_sample"`
	QueryExecuted string        `json:"query_executed"`
	RowsAnalyzed  int           `json:"rows_analyzed"`
}

type Service struct {
	executor  Executor
	generator *insight.Generator
}

func NewService(executor Executor, generator *insight.Generator) *Service {
	return &Service{executor: executor, generator: generator}
}

// Analyze executes req and builds a Report. Insight failures are folded into
// the report text; only query failures and empty results are errors.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, core.NewValidationError(core.ReasonInvalidLimit, "limit must be between 1 and %d", MaxLimit)
	}

	result, err := s.executor.Execute(ctx, gateway.CandidateQuery{
		Query:  req.Query,
		Params: req.Params,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	if result.RowsReturned == 0 {
		return nil, fmt.Errorf("analysis: %w", core.ErrEmptyResult)
	}

	numeric := core.NumericColumns(result.Data, result.Columns)
	summary := core.Summarize(result.Data, core.Describe(result.Data, numeric))
	customLog.Infof("Analysis: %d rows, %d numeric columns", result.RowsReturned, len(numeric))

	ai := s.generator.Generate(ctx, insight.Input{
		Query:    result.QueryExecuted,
		Records:  result.Data,
		Summary:  summary,
		Question: req.Question,
	})

	sample := result.Data
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	return &Report{
		Success:       true,
		Statistics:    summary,
		AIInsight:     ai.Text,
		DataSample:    sample,
		QueryExecuted: result.QueryExecuted,
		RowsAnalyzed:  result.RowsReturned,
	}, nil
}
