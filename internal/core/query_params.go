// internal/core/query_params.go
package core

import (
	"net/url"
	"strconv"
)

// Default and limit constants for pagination
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// ListQueryOptions holds parsed pagination parameters for the listing endpoints.
type ListQueryOptions struct {
	Skip  int
	Limit int
}

// ParseListQueryOptions extracts skip/limit from query parameters.
// Returns a *ValidationError when either value is out of range.
func ParseListQueryOptions(queryParams url.Values) (*ListQueryOptions, error) {
	opts := &ListQueryOptions{
		Skip:  0,
		Limit: DefaultLimit,
	}

	// Parse limit
	if limitStr := queryParams.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, NewValidationError(ReasonInvalidLimit, "invalid 'limit' parameter: must be an integer")
		}
		if limit < 1 {
			return nil, NewValidationError(ReasonInvalidLimit, "invalid 'limit' parameter: must be at least 1")
		}
		if limit > MaxLimit {
			return nil, NewValidationError(ReasonInvalidLimit, "invalid 'limit' parameter: maximum is %d", MaxLimit)
		}
		opts.Limit = limit
	}

	// Parse skip
	if skipStr := queryParams.Get("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil {
			return nil, NewValidationError(ReasonInvalidParameter, "invalid 'skip' parameter: must be an integer")
		}
		if skip < 0 {
			return nil, NewValidationError(ReasonInvalidParameter, "invalid 'skip' parameter: must be non-negative")
		}
		opts.Skip = skip
	}

	return opts, nil
}

// ParseYear reads an optional 'year' filter. ok is false when the parameter is absent.
func ParseYear(queryParams url.Values) (year int, ok bool, err error) {
	raw := queryParams.Get("year")
	if raw == "" {
		return 0, false, nil
	}
	year, err = strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		return 0, false, NewValidationError(ReasonInvalidParameter, "invalid 'year' parameter: must be between 2000 and 2100")
	}
	return year, true, nil
}
