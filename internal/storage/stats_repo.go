package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/domain"
)

// Band labels in presentation order. Values outside every band are "Unknown".
var (
	AgeBands  = []string{"0-17", "18-25", "26-35", "36-45", "46-55", "56-65", "65+"}
	StayBands = []string{"1-3 days", "4-7 days", "8-14 days", "15-30 days", "30+ days"}
)

const unknownBand = "Unknown"

// StatsRepo computes the fixed aggregates over the dataset table.
type StatsRepo struct {
	pool    *Pool
	mapping dataset.Mapping
}

func NewStatsRepo(pool *Pool, mapping dataset.Mapping) *StatsRepo {
	return &StatsRepo{pool: pool, mapping: mapping}
}

func (r *StatsRepo) table() string { return dialect.QuoteIdent(r.mapping.Table) }

// categoryCounts groups by column and returns each group's count and share
// of the total, largest first. top > 0 keeps only that many groups.
func (r *StatsRepo) categoryCounts(ctx context.Context, op, column string, top int) ([]domain.CategoryCount, error) {
	col := dialect.QuoteIdent(column)
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) AS total,
	ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER (), 2) AS percentage
FROM %[2]s
WHERE %[1]s IS NOT NULL
GROUP BY %[1]s
ORDER BY total DESC`, col, r.table())
	if top > 0 {
		query += " " + r.pool.dialect.LimitClause(top)
	}

	out := []domain.CategoryCount{}
	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var key any
			var cc domain.CategoryCount
			if err := rows.Scan(&key, &cc.Total, &cc.Percentage); err != nil {
				return err
			}
			cc.Category = cellString(key)
			out = append(out, cc)
		}
		return rows.Err()
	})
	if err != nil {
		customLog.Warnf("Storage: Failed computing %s: %v", op, err)
		return nil, &core.DatabaseError{Op: op, Err: err}
	}
	return out, nil
}

// bandCounts groups rows by a CASE expression over column and orders the
// result by labels (unknown last).
func (r *StatsRepo) bandCounts(ctx context.Context, op, column, caseExpr string, labels []string) ([]domain.BandCount, error) {
	query := fmt.Sprintf(`SELECT %[1]s AS band, COUNT(*) AS total
FROM %[2]s
WHERE %[3]s IS NOT NULL
GROUP BY %[1]s`, caseExpr, r.table(), dialect.QuoteIdent(column))

	out := []domain.BandCount{}
	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var bc domain.BandCount
			if err := rows.Scan(&bc.Band, &bc.Total); err != nil {
				return err
			}
			out = append(out, bc)
		}
		return rows.Err()
	})
	if err != nil {
		customLog.Warnf("Storage: Failed computing %s: %v", op, err)
		return nil, &core.DatabaseError{Op: op, Err: err}
	}

	rank := make(map[string]int, len(labels))
	for i, l := range labels {
		rank[l] = i
	}
	position := func(band string) int {
		if p, ok := rank[band]; ok {
			return p
		}
		return len(labels)
	}
	sort.SliceStable(out, func(i, j int) bool { return position(out[i].Band) < position(out[j].Band) })
	return out, nil
}

// Diagnoses counts records per diagnosis category.
func (r *StatsRepo) Diagnoses(ctx context.Context) ([]domain.CategoryCount, error) {
	return r.categoryCounts(ctx, "diagnosis statistics", r.mapping.Columns.Category, 0)
}

// AgeDistribution counts records per age band.
func (r *StatsRepo) AgeDistribution(ctx context.Context) ([]domain.BandCount, error) {
	age := dialect.QuoteIdent(r.mapping.Columns.Age)
	expr := fmt.Sprintf(`CASE
	WHEN %[1]s BETWEEN 0 AND 17 THEN '0-17'
	WHEN %[1]s BETWEEN 18 AND 25 THEN '18-25'
	WHEN %[1]s BETWEEN 26 AND 35 THEN '26-35'
	WHEN %[1]s BETWEEN 36 AND 45 THEN '36-45'
	WHEN %[1]s BETWEEN 46 AND 55 THEN '46-55'
	WHEN %[1]s BETWEEN 56 AND 65 THEN '56-65'
	WHEN %[1]s > 65 THEN '65+'
	ELSE '%[2]s'
END`, age, unknownBand)
	return r.bandCounts(ctx, "age distribution", r.mapping.Columns.Age, expr, AgeBands)
}

// SexDistribution counts records per sex. Codes 1 and 2 are Male and
// Female; every other code is merged into Other.
func (r *StatsRepo) SexDistribution(ctx context.Context) ([]domain.CategoryCount, error) {
	raw, err := r.categoryCounts(ctx, "sex distribution", r.mapping.Columns.Sex, 0)
	if err != nil {
		return nil, err
	}
	merged := []domain.CategoryCount{}
	index := map[string]int{}
	for _, cc := range raw {
		label := sexLabel(cc.Category)
		if i, ok := index[label]; ok {
			merged[i].Total += cc.Total
			merged[i].Percentage = round2(merged[i].Percentage + cc.Percentage)
			continue
		}
		index[label] = len(merged)
		cc.Category = label
		merged = append(merged, cc)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Total > merged[j].Total })
	return merged, nil
}

func sexLabel(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return "Male"
	case "2":
		return "Female"
	default:
		return "Other"
	}
}

// AdmissionTypes counts records per contact circumstance.
func (r *StatsRepo) AdmissionTypes(ctx context.Context) ([]domain.CategoryCount, error) {
	return r.categoryCounts(ctx, "admission type statistics", r.mapping.Columns.ContactType, 0)
}

// MonthlyTrend counts admissions per month, for one year when year is
// non-nil and for the trailing twelve months otherwise.
func (r *StatsRepo) MonthlyTrend(ctx context.Context, year *int) ([]domain.MonthlyCount, error) {
	d := r.pool.dialect
	col := r.mapping.Columns.AdmissionDate
	month, yearExpr := d.MonthExpr(col), d.YearExpr(col)

	var where string
	params := map[string]any{}
	if year != nil {
		where = fmt.Sprintf("%s IS NOT NULL AND %s = %s", dialect.QuoteIdent(col), yearExpr, d.Param("year"))
		params["year"] = *year
	} else {
		where = d.RecentMonthsPredicate(col)
	}
	query := fmt.Sprintf(`SELECT %[1]s AS month_number, %[2]s AS year_number, COUNT(*) AS total
FROM %[3]s
WHERE %[4]s
GROUP BY %[1]s, %[2]s
ORDER BY year_number, month_number`, month, yearExpr, r.table(), where)

	out := []domain.MonthlyCount{}
	err := r.pool.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, d.Bind(params)...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var m, y int
			var total int64
			if err := rows.Scan(&m, &y, &total); err != nil {
				return err
			}
			out = append(out, domain.MonthlyCount{Month: monthName(m), Year: y, Total: total})
		}
		return rows.Err()
	})
	if err != nil {
		customLog.Warnf("Storage: Failed computing monthly trend: %v", err)
		return nil, &core.DatabaseError{Op: "monthly trend", Err: err}
	}
	return out, nil
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("%02d", m)
	}
	return time.Month(m).String()
}

// StayDuration counts records per length-of-stay band.
func (r *StatsRepo) StayDuration(ctx context.Context) ([]domain.BandCount, error) {
	stay := dialect.QuoteIdent(r.mapping.Columns.StayDays)
	expr := fmt.Sprintf(`CASE
	WHEN %[1]s BETWEEN 1 AND 3 THEN '1-3 days'
	WHEN %[1]s BETWEEN 4 AND 7 THEN '4-7 days'
	WHEN %[1]s BETWEEN 8 AND 14 THEN '8-14 days'
	WHEN %[1]s BETWEEN 15 AND 30 THEN '15-30 days'
	WHEN %[1]s > 30 THEN '30+ days'
	ELSE '%[2]s'
END`, stay, unknownBand)
	return r.bandCounts(ctx, "stay duration", r.mapping.Columns.StayDays, expr, StayBands)
}

// Regions counts records per autonomous community.
func (r *StatsRepo) Regions(ctx context.Context) ([]domain.CategoryCount, error) {
	return r.categoryCounts(ctx, "region statistics", r.mapping.Columns.Region, 0)
}

// Services returns the twenty services with the most records.
func (r *StatsRepo) Services(ctx context.Context) ([]domain.CategoryCount, error) {
	return r.categoryCounts(ctx, "service statistics", r.mapping.Columns.Service, 20)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
