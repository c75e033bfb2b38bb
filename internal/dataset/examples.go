package dataset

import (
	"strings"

	"github.com/DitoluT/malackathon2025/internal/dialect"
)

// Example is a ready-to-run query offered by GET /query/examples.
type Example struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Query       string         `json:"query"`
	Params      map[string]any `json:"params,omitempty"`
}

// Examples renders the catalog against m using d's parameter and
// row-limit syntax. Every query passes the default query policy.
func Examples(m Mapping, d dialect.Dialect) []Example {
	c := m.Columns
	q := dialect.QuoteIdent
	table := q(m.Table)

	// {T} is the table, {P:x} a bind parameter
	render := func(tmpl string) string {
		r := strings.NewReplacer(
			"{T}", table,
			"{CAT}", q(c.Category),
			"{AGE}", q(c.Age),
			"{SEX}", q(c.Sex),
			"{NAME}", q(c.Name),
			"{REGION}", q(c.Region),
			"{SERVICE}", q(c.Service),
			"{STAY}", q(c.StayDays),
			"{DIAG}", q(c.PrimaryDiagnosis),
			"{ADMIT}", q(c.AdmissionDate),
			"{YEAR}", d.YearExpr(c.AdmissionDate),
			"{MONTH}", d.MonthExpr(c.AdmissionDate),
			"{P:edad}", d.Param("edad"),
			"{P:min_edad}", d.Param("min_edad"),
			"{P:max_edad}", d.Param("max_edad"),
			"{P:dias}", d.Param("dias"),
			"{LIMIT10}", d.LimitClause(10),
		)
		return r.Replace(tmpl)
	}

	return []Example{
		{
			Name:        "Cases by diagnosis category",
			Description: "Counts cases for each diagnosis category",
			Query:       render(`SELECT {CAT}, COUNT(*) AS total FROM {T} WHERE {CAT} IS NOT NULL GROUP BY {CAT} ORDER BY total DESC`),
		},
		{
			Name:        "Patients older than an age",
			Description: "Lists patients older than the edad parameter",
			Query:       render(`SELECT {NAME}, {AGE}, {SEX}, {REGION} FROM {T} WHERE {AGE} > {P:edad} ORDER BY {AGE} DESC`),
			Params:      map[string]any{"edad": 50},
		},
		{
			Name:        "Patients in an age range",
			Description: "Lists patients whose age lies between min_edad and max_edad",
			Query:       render(`SELECT {NAME}, {AGE}, {SEX} FROM {T} WHERE {AGE} BETWEEN {P:min_edad} AND {P:max_edad}`),
			Params:      map[string]any{"min_edad": 30, "max_edad": 40},
		},
		{
			Name:        "Average stay by service",
			Description: "Average length of stay in days for each hospital service",
			Query:       render(`SELECT {SERVICE}, ROUND(AVG({STAY}), 2) AS average_days, COUNT(*) AS cases FROM {T} WHERE {SERVICE} IS NOT NULL AND {STAY} IS NOT NULL GROUP BY {SERVICE} ORDER BY average_days DESC`),
		},
		{
			Name:        "Admissions by region",
			Description: "Counts admissions per autonomous community",
			Query:       render(`SELECT {REGION}, COUNT(*) AS total_admissions FROM {T} WHERE {REGION} IS NOT NULL GROUP BY {REGION} ORDER BY total_admissions DESC`),
		},
		{
			Name:        "Top 10 primary diagnoses",
			Description: "The ten most frequent primary diagnoses with their category",
			Query:       render(`SELECT {DIAG}, {CAT}, COUNT(*) AS cases FROM {T} WHERE {DIAG} IS NOT NULL GROUP BY {DIAG}, {CAT} ORDER BY cases DESC {LIMIT10}`),
		},
		{
			Name:        "Admissions by month",
			Description: "Monthly admission trend",
			Query:       render(`SELECT {YEAR} AS admission_year, {MONTH} AS admission_month, COUNT(*) AS total_admissions FROM {T} WHERE {ADMIT} IS NOT NULL GROUP BY {YEAR}, {MONTH} ORDER BY admission_year DESC, admission_month DESC`),
		},
		{
			Name:        "Long stays",
			Description: "Patients whose stay exceeds the dias parameter",
			Query:       render(`SELECT {NAME}, {AGE}, {SEX}, {STAY}, {DIAG}, {SERVICE} FROM {T} WHERE {STAY} > {P:dias} ORDER BY {STAY} DESC`),
			Params:      map[string]any{"dias": 30},
		},
	}
}
