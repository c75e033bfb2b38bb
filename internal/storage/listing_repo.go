package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/dialect"
)

// Listing entities served under /data/{entity}.
const (
	EntityPatients   = "patients"
	EntityDiagnoses  = "diagnoses"
	EntityAdmissions = "admissions"
)

// Page is one slice of a listing.
type Page struct {
	Data    []core.Record `json:"data"`
	Skip    int           `json:"skip"`
	Limit   int           `json:"limit"`
	Count   int           `json:"count"`
	HasMore bool          `json:"has_more"`
}

// ListingRepo serves paginated raw rows of the dataset table.
type ListingRepo struct {
	pool    *Pool
	mapping dataset.Mapping
}

func NewListingRepo(pool *Pool, mapping dataset.Mapping) *ListingRepo {
	return &ListingRepo{pool: pool, mapping: mapping}
}

type projection struct {
	column, alias string
}

func selectList(cols []projection) string {
	parts := make([]string, len(cols))
	for i, p := range cols {
		parts[i] = dialect.QuoteIdent(p.column) + " AS " + dialect.QuoteIdent(p.alias)
	}
	return strings.Join(parts, ", ")
}

// listingQuery builds the un-paged SELECT for entity.
func (r *ListingRepo) listingQuery(entity string) (string, error) {
	c := r.mapping.Columns
	q := dialect.QuoteIdent
	table := q(r.mapping.Table)

	switch entity {
	case EntityPatients:
		return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", selectList([]projection{
			{c.Name, "name"},
			{c.Age, "age"},
			{c.Sex, "sex"},
			{c.Region, "region"},
			{c.BirthDate, "birth_date"},
		}), table, q(c.Name)), nil
	case EntityDiagnoses:
		return fmt.Sprintf(`SELECT %[1]s AS "primary_diagnosis", %[2]s AS "category", COUNT(*) AS "cases"
FROM %[3]s
WHERE %[1]s IS NOT NULL
GROUP BY %[1]s, %[2]s
ORDER BY COUNT(*) DESC, %[1]s`, q(c.PrimaryDiagnosis), q(c.Category), table), nil
	case EntityAdmissions:
		return fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s DESC", selectList([]projection{
			{c.Name, "name"},
			{c.AdmissionDate, "admission_date"},
			{c.ContactEndDate, "contact_end_date"},
			{c.StayDays, "stay_days"},
			{c.PrimaryDiagnosis, "primary_diagnosis"},
			{c.Category, "category"},
			{c.DischargeType, "discharge_type"},
			{c.Service, "service"},
		}), table, q(c.AdmissionDate), q(c.AdmissionDate)), nil
	default:
		return "", fmt.Errorf("%w: unknown entity '%s'", core.ErrNotFound, entity)
	}
}

// List returns rows [skip, skip+limit) of entity. One extra row is read to
// decide HasMore.
func (r *ListingRepo) List(ctx context.Context, entity string, opts core.ListQueryOptions) (*Page, error) {
	base, err := r.listingQuery(entity)
	if err != nil {
		return nil, err
	}
	d := r.pool.dialect
	query := base + "\n" + d.PageClause()
	args := d.Bind(map[string]any{"skip": opts.Skip, "limit": opts.Limit + 1})

	var rs *core.ResultSet
	err = r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rs, err = scanResultSet(rows)
		return err
	})
	if err != nil {
		customLog.Warnf("Storage: Failed listing %s: %v", entity, err)
		return nil, &core.DatabaseError{Op: "listing " + entity, Err: err}
	}

	page := &Page{Skip: opts.Skip, Limit: opts.Limit}
	if len(rs.Rows) > opts.Limit {
		rs.Rows = rs.Rows[:opts.Limit]
		page.HasMore = true
	}
	page.Data = core.Normalize(rs)
	page.Count = len(page.Data)
	return page, nil
}
