// internal/core/validation_test.go
package core

import (
	"errors"
	"strings"
	"testing"
)

func TestIsValidIdentifier(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    bool
		comment string
	}{
		{"valid table", "ENFERMEDADESMENTALESDIAGNOSTICO", true, ""},
		{"valid with numbers", "table_123", true, ""},
		{"valid slug", "monthly-trend", true, ""},
		{"valid long (64 chars)", strings.Repeat("a", 64), true, ""},
		{"invalid empty", "", false, "empty string"},
		{"invalid space", "my table", false, "contains space"},
		{"invalid quote", `t"x`, false, "contains quote"},
		{"invalid semicolon", "t;drop", false, "contains semicolon"},
		{"invalid too long", strings.Repeat("a", 65), false, "exceeds 64 chars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidIdentifier(tc.input)
			if got != tc.want {
				t.Errorf("IsValidIdentifier(%q) = %v; want %v. %s", tc.input, got, tc.want, tc.comment)
			}
		})
	}
}

func TestQueryPolicyValidate(t *testing.T) {
	policy := DefaultQueryPolicy()

	testCases := []struct {
		name       string
		input      string
		wantOK     bool
		wantReason ReasonCode
		wantQuery  string
	}{
		{"plain select", "SELECT * FROM T", true, "", "SELECT * FROM T"},
		{"lowercase with whitespace", "  \n select edad from t  ", true, "", "select edad from t"},
		{"single trailing terminator", "SELECT 1 FROM DUAL;", true, "", "SELECT 1 FROM DUAL"},
		{"terminator with inner space", "SELECT 1 FROM DUAL ;", true, "", "SELECT 1 FROM DUAL"},
		{"keyword as column prefix", "SELECT updated_at, created_by FROM T", true, "", "SELECT updated_at, created_by FROM T"},
		{"exec inside executed", "SELECT executed FROM T", true, "", "SELECT executed FROM T"},
		{"too short", "SELECT 1", false, ReasonTooShort, ""},
		{"too long", "SELECT " + strings.Repeat("x", 5000), false, ReasonTooLong, ""},
		{"not select", "UPDATE T SET a = 1", false, ReasonNotSelect, ""},
		{"cte rejected", "WITH x AS (SELECT 1 FROM DUAL) SELECT * FROM x", false, ReasonNotSelect, ""},
		{"select prefix only", "SELECTED_ROWS FROM T", false, ReasonNotSelect, ""},
		{"drop after select", "SELECT * FROM T; DROP TABLE T", false, ReasonForbiddenKeyword, ""},
		{"mixed case delete", "SELECT * FROM T WHERE x IN (dElEtE)", false, ReasonForbiddenKeyword, ""},
		{"keyword inside literal", "SELECT * FROM T WHERE note = 'please UPDATE'", false, ReasonForbiddenKeyword, ""},
		{"two statements", "SELECT 1; SELECT 2;", false, ReasonMultipleStatements, ""},
		{"double terminator", "SELECT 1 FROM DUAL;;", false, ReasonMultipleStatements, ""},
		{"semicolon in literal", "SELECT * FROM T WHERE a = ';'", false, ReasonMultipleStatements, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := policy.Validate(tc.input)
			if v.Accepted != tc.wantOK {
				t.Fatalf("Validate(%q).Accepted = %v; want %v (reason %q: %s)", tc.input, v.Accepted, tc.wantOK, v.Reason, v.Message)
			}
			if tc.wantOK {
				if v.Query != tc.wantQuery {
					t.Errorf("Validate(%q).Query = %q; want %q", tc.input, v.Query, tc.wantQuery)
				}
				if v.Err() != nil {
					t.Errorf("accepted verdict returned error %v", v.Err())
				}
				return
			}
			if v.Reason != tc.wantReason {
				t.Errorf("Validate(%q).Reason = %q; want %q", tc.input, v.Reason, tc.wantReason)
			}
			var vErr *ValidationError
			if !errors.As(v.Err(), &vErr) || vErr.Message != v.Message {
				t.Errorf("rejected verdict should carry a ValidationError with its message, got %v", v.Err())
			}
		})
	}
}

func TestQueryPolicyReportsFirstListedKeyword(t *testing.T) {
	v := DefaultQueryPolicy().Validate("SELECT * FROM T; DROP TABLE T; DELETE FROM T")
	if v.Accepted {
		t.Fatal("expected rejection")
	}
	if v.Message != "Keyword 'DROP' is not allowed in queries" {
		t.Errorf("unexpected message %q", v.Message)
	}
}

func TestQueryPolicyIdempotent(t *testing.T) {
	policy := DefaultQueryPolicy()
	inputs := []string{
		"SELECT 1 FROM DUAL;",
		`  select "Categoría", count(*) from t group by "Categoría"  `,
	}
	for _, in := range inputs {
		first := policy.Validate(in)
		if !first.Accepted {
			t.Fatalf("Validate(%q) rejected: %s", in, first.Message)
		}
		second := policy.Validate(first.Query)
		if !second.Accepted || second.Query != first.Query {
			t.Errorf("re-validating %q gave %+v", first.Query, second)
		}
	}
}

func TestQueryPolicyCustomBounds(t *testing.T) {
	policy := QueryPolicy{MinLength: 1, MaxLength: 20}
	if v := policy.Validate("SELECT a FROM b"); !v.Accepted {
		t.Errorf("expected short query accepted under relaxed policy: %s", v.Message)
	}
	if v := policy.Validate("SELECT a, b, c, d FROM t"); v.Reason != ReasonTooLong {
		t.Errorf("expected %q, got %q", ReasonTooLong, v.Reason)
	}
}

func TestHasRowLimit(t *testing.T) {
	markers := []string{"FETCH FIRST", "ROWNUM", "LIMIT"}
	testCases := []struct {
		query string
		want  bool
	}{
		{"SELECT * FROM T", false},
		{"SELECT * FROM T fetch first 5 rows only", true},
		{"SELECT * FROM T WHERE rownum < 5", true},
		{"SELECT * FROM T limit 3", true},
		{"SELECT credit_limit FROM T", true}, // substring heuristic
	}
	for _, tc := range testCases {
		if got := HasRowLimit(tc.query, markers); got != tc.want {
			t.Errorf("HasRowLimit(%q) = %v; want %v", tc.query, got, tc.want)
		}
	}
}
