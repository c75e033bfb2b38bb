// Package gateway runs client-supplied SELECT queries: validation, row
// limiting, bound execution and normalization.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/logger"
	"github.com/DitoluT/malackathon2025/internal/metrics"
)

var (
	customLog = logger.NewLogger()
)

// DefaultLimit applies when a request does not name a row limit.
const DefaultLimit = 100

// Runner executes an accepted query with driver-bound named parameters.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*core.ResultSet, error)
}

// CandidateQuery is a client request before validation.
type CandidateQuery struct {
	Query  string
	Params map[string]any
	Limit  int
}

// Result is what the execute endpoint returns.
type Result struct {
	Columns       []string      `json:"columns"`
	Data          []core.Record `json:"data"`
	RowsReturned  int           `json:"rows_returned"`
	QueryExecuted string        `json:"query_executed"`
	Message       *string       `json:"message"`
}

// Gateway is safe for concurrent use; it holds no per-request state.
type Gateway struct {
	validator core.Validator
	runner    Runner
	dialect   dialect.Dialect
	maxLimit  int
}

func New(validator core.Validator, runner Runner, d dialect.Dialect, maxLimit int) *Gateway {
	return &Gateway{validator: validator, runner: runner, dialect: d, maxLimit: maxLimit}
}

// Execute validates cq, bounds its rows and runs it.
func (g *Gateway) Execute(ctx context.Context, cq CandidateQuery) (*Result, error) {
	verdict := g.validator.Validate(cq.Query)
	metrics.RecordValidation(verdict.Accepted, string(verdict.Reason))
	if !verdict.Accepted {
		customLog.Warnf("Gateway: Rejected query (%s): %s", verdict.Reason, verdict.Message)
		return nil, verdict.Err()
	}

	limit := cq.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > g.maxLimit {
		return nil, core.NewValidationError(core.ReasonInvalidLimit, "limit must be between 1 and %d", g.maxLimit)
	}
	params, err := normalizeParams(cq.Params)
	if err != nil {
		return nil, err
	}

	query := verdict.Query
	if !core.HasRowLimit(query, g.dialect.RowLimitMarkers()) {
		// own line, so a trailing "--" comment cannot swallow the clause
		query = query + "\n" + g.dialect.LimitClause(limit)
	}

	rs, err := g.runner.Run(ctx, query, params)
	if err != nil {
		customLog.WithField("query", query).WithField("params", params).Errorf("Gateway: Query failed: %v", err)
		var dbErr *core.DatabaseError
		if errors.As(err, &dbErr) {
			return nil, dbErr
		}
		return nil, &core.DatabaseError{Op: "query", Err: err}
	}

	data := core.Normalize(rs)
	result := &Result{
		Columns:       rs.Columns,
		Data:          data,
		RowsReturned:  len(data),
		QueryExecuted: query,
	}
	if result.Columns == nil {
		result.Columns = []string{}
	}
	if result.RowsReturned == limit {
		msg := fmt.Sprintf("Results limited to %d rows. Use a more specific query or increase the limit.", limit)
		result.Message = &msg
	}
	metrics.RowsReturned.Observe(float64(result.RowsReturned))
	return result, nil
}

// normalizeParams accepts scalar JSON values only. Whole float64 numbers
// (how encoding/json decodes every number) are bound as int64.
func normalizeParams(params map[string]any) (map[string]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(params))
	for name, v := range params {
		if !core.IsValidIdentifier(name) {
			return nil, core.NewValidationError(core.ReasonInvalidParameter, "invalid parameter name '%s'", name)
		}
		switch x := v.(type) {
		case nil, string, bool, int, int32, int64:
			out[name] = x
		case float64:
			if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
				out[name] = int64(x)
			} else {
				out[name] = x
			}
		default:
			return nil, core.NewValidationError(core.ReasonInvalidParameter, "parameter '%s' must be a string, number, boolean or null", name)
		}
	}
	return out, nil
}
