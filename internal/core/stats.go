package core

import (
	"math"
	"sort"
	"strings"
)

// ColumnStats holds descriptive metrics for one numeric column. Metric
// pointers are nil when the column has no usable values.
type ColumnStats struct {
	Mean        *float64 `json:"mean"`
	Median      *float64 `json:"median"`
	Mode        *float64 `json:"mode"`
	StdDev      *float64 `json:"std_dev"`
	Variance    *float64 `json:"variance"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Range       *float64 `json:"range"`
	Q1          *float64 `json:"q1"`
	Q3          *float64 `json:"q3"`
	IQR         *float64 `json:"iqr"`
	NullCount   int      `json:"null_count"`
	UniqueCount int      `json:"unique_count"`
	TotalCount  int      `json:"total_count"`
}

// StatisticsReport maps a column name to its metrics.
type StatisticsReport map[string]ColumnStats

// Describe computes ColumnStats for each named column over records.
// Absent, null and non-numeric cells count toward NullCount.
//
// Quartiles are positional: with values sorted ascending, Q1 = v[n/4] and
// Q3 = v[3n/4] (zero-based, integer division). No interpolation.
// Mode ties resolve to the smallest of the tied values.
func Describe(records []Record, columns []string) StatisticsReport {
	report := make(StatisticsReport, len(columns))
	for _, col := range columns {
		values := make([]float64, 0, len(records))
		for _, rec := range records {
			if f, ok := AsFloat(rec[col]); ok {
				values = append(values, f)
			}
		}
		report[col] = describeValues(values, len(records))
	}
	return report
}

func describeValues(values []float64, total int) ColumnStats {
	stats := ColumnStats{
		NullCount:  total - len(values),
		TotalCount: total,
	}
	n := len(values)
	if n == 0 {
		return stats
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	mode, unique := modeAndUnique(sorted)

	var variance float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		variance = sq / float64(n-1)
	}

	lo, hi := sorted[0], sorted[n-1]
	q1, q3 := sorted[n/4], sorted[(3*n)/4]

	stats.Mean = ptr(round2(mean))
	stats.Median = ptr(round2(median))
	stats.Mode = ptr(round2(mode))
	stats.Variance = ptr(round2(variance))
	stats.StdDev = ptr(round2(math.Sqrt(variance)))
	stats.Min = ptr(round2(lo))
	stats.Max = ptr(round2(hi))
	stats.Range = ptr(round2(hi - lo))
	stats.Q1 = ptr(round2(q1))
	stats.Q3 = ptr(round2(q3))
	stats.IQR = ptr(round2(q3 - q1))
	stats.UniqueCount = unique
	return stats
}

// modeAndUnique expects sorted input. Equal values form contiguous runs;
// only a strictly longer run replaces the current mode.
func modeAndUnique(sorted []float64) (float64, int) {
	mode := sorted[0]
	best, run, unique := 0, 0, 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			run = 0
			unique++
		}
		run++
		if run > best {
			best = run
			mode = v
		}
	}
	return mode, unique
}

// NumericColumns returns, in projection order, the columns holding at
// least one numeric value.
func NumericColumns(records []Record, columns []string) []string {
	var out []string
	for _, col := range columns {
		for _, rec := range records {
			if _, ok := AsFloat(rec[col]); ok {
				out = append(out, col)
				break
			}
		}
	}
	return out
}

// HeadlineMetrics are pooled over every numeric cell of a result.
type HeadlineMetrics struct {
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	StdDev *float64 `json:"std_dev,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Range  *float64 `json:"range,omitempty"`
}

// Summary is the statistics block returned by the analysis endpoint.
type Summary struct {
	TotalRecords     int              `json:"total_records"`
	UniqueCategories int              `json:"unique_categories"`
	Metrics          HeadlineMetrics  `json:"metrics"`
	Columns          StatisticsReport `json:"columns"`
}

// identifier-like columns left out of the pooled metrics
var pooledExclusions = map[string]bool{"id": true, "year": true, "edad": true, "age": true}

// Summarize pools the numeric cells of records into headline metrics and
// counts distinct non-empty text values.
func Summarize(records []Record, report StatisticsReport) Summary {
	summary := Summary{
		TotalRecords: len(records),
		Columns:      report,
	}
	if summary.Columns == nil {
		summary.Columns = StatisticsReport{}
	}

	categories := make(map[string]struct{})
	var pooled []float64
	for _, rec := range records {
		for key, val := range rec {
			if s, ok := val.(string); ok && s != "" {
				categories[s] = struct{}{}
				continue
			}
			if pooledExclusions[strings.ToLower(key)] {
				continue
			}
			if f, ok := AsFloat(val); ok {
				pooled = append(pooled, f)
			}
		}
	}
	summary.UniqueCategories = len(categories)

	if len(pooled) > 0 {
		s := describeValues(pooled, len(pooled))
		summary.Metrics = HeadlineMetrics{
			Mean:   s.Mean,
			Median: s.Median,
			StdDev: s.StdDev,
			Min:    s.Min,
			Max:    s.Max,
			Range:  s.Range,
		}
	}
	return summary
}

// AsFloat reports whether v is a Go numeric scalar and returns it as float64.
// Booleans are not numeric.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case float64:
		return n, !math.IsNaN(n)
	default:
		return 0, false
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func ptr(v float64) *float64 { return &v }
