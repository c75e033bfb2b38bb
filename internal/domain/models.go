// internal/domain/models.go
package domain

import "time"

// CategoryCount is one row of a grouped count with its share of the total.
type CategoryCount struct {
	Category   string  `json:"category"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// BandCount is the number of records falling into one ordered band (age or stay length).
type BandCount struct {
	Band  string `json:"band"`
	Total int64  `json:"total"`
}

// MonthlyCount is the number of admissions in one calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Total int64  `json:"total"`
}

// ColumnInfo describes one column of the dataset table.
type ColumnInfo struct {
	Name       string `json:"column_name"`
	DataType   string `json:"data_type"`
	DataLength int64  `json:"data_length"`
	Nullable   bool   `json:"nullable"`
}

// TableSchema is the catalog view of the dataset table.
type TableSchema struct {
	TableName    string       `json:"table_name"`
	TotalColumns int          `json:"total_columns"`
	Columns      []ColumnInfo `json:"columns"`
}

// PoolStats is the subset of database/sql pool counters reported by /health.
type PoolStats struct {
	MaxOpen int `json:"max_open"`
	Open    int `json:"open"`
	InUse   int `json:"in_use"`
	Idle    int `json:"idle"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status       string     `json:"status"`
	Database     string     `json:"database"`
	Timestamp    time.Time  `json:"timestamp"`
	Version      string     `json:"version"`
	TotalRecords *int64     `json:"total_records,omitempty"`
	Pool         *PoolStats `json:"pool,omitempty"`
	Error        string     `json:"error,omitempty"`
}
