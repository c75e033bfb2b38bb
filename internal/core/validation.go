// internal/core/validation.go
package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Regular expression for valid table names and path segments (alphanumeric, underscore, hyphen)
var nameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsValidIdentifier checks if a string is a valid identifier (table name, metric or entity slug).
func IsValidIdentifier(name string) bool {
	return nameValidationRegex.MatchString(name) && len(name) <= 64
}

// ForbiddenKeywords are rejected as whole words anywhere in a query, string
// literals included. A literal such as 'UPDATE pending' is therefore rejected too.
var ForbiddenKeywords = []string{
	"DROP", "DELETE", "TRUNCATE", "INSERT", "UPDATE",
	"CREATE", "ALTER", "GRANT", "REVOKE", "EXECUTE",
	"EXEC", "CALL", "MERGE", "RENAME",
}

var (
	selectPrefix     = regexp.MustCompile(`^SELECT\b`)
	forbiddenMatcher = compileKeywordMatchers(ForbiddenKeywords)
)

func compileKeywordMatchers(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		out[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return out
}

// Verdict is the outcome of validating a candidate query.
type Verdict struct {
	Accepted bool
	// Query is the accepted text: trimmed, original casing, one trailing ';' removed.
	Query   string
	Reason  ReasonCode
	Message string
}

// Err returns nil for accepted verdicts and a *ValidationError otherwise.
func (v Verdict) Err() error {
	if v.Accepted {
		return nil
	}
	return &ValidationError{Reason: v.Reason, Message: v.Message}
}

func accept(query string) Verdict { return Verdict{Accepted: true, Query: query} }

func reject(reason ReasonCode, message string) Verdict {
	return Verdict{Reason: reason, Message: message}
}

// Validator classifies a query string as accepted or rejected.
type Validator interface {
	Validate(query string) Verdict
}

// QueryPolicy is the keyword/structure policy for ad-hoc queries.
// It is pattern matching, not a SQL parser.
type QueryPolicy struct {
	MinLength int
	MaxLength int
}

// DefaultQueryPolicy mirrors the request bounds of the query endpoint.
func DefaultQueryPolicy() QueryPolicy {
	return QueryPolicy{MinLength: 10, MaxLength: 5000}
}

// Validate applies, in order: length bounds, leading SELECT, forbidden
// keywords, and the single-statement rule.
func (p QueryPolicy) Validate(query string) Verdict {
	trimmed := strings.TrimSpace(query)

	length := utf8.RuneCountInString(trimmed)
	if p.MinLength > 0 && length < p.MinLength {
		return reject(ReasonTooShort, fmt.Sprintf("Query must be at least %d characters long", p.MinLength))
	}
	if p.MaxLength > 0 && length > p.MaxLength {
		return reject(ReasonTooLong, fmt.Sprintf("Query must be at most %d characters long", p.MaxLength))
	}

	upper := strings.ToUpper(trimmed)
	if !selectPrefix.MatchString(upper) {
		return reject(ReasonNotSelect, "Only SELECT queries are allowed")
	}

	for i, re := range forbiddenMatcher {
		if re.MatchString(upper) {
			return reject(ReasonForbiddenKeyword, "Keyword '"+ForbiddenKeywords[i]+"' is not allowed in queries")
		}
	}

	body := strings.TrimSuffix(trimmed, ";")
	if strings.Contains(body, ";") {
		return reject(ReasonMultipleStatements, "Multiple statements are not allowed")
	}

	return accept(strings.TrimSpace(body))
}

// HasRowLimit reports whether query already contains one of the markers
// (case-insensitive substring match).
func HasRowLimit(query string, markers []string) bool {
	upper := strings.ToUpper(query)
	for _, m := range markers {
		if strings.Contains(upper, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}
