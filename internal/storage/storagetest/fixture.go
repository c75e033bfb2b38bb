// Package storagetest seeds a throwaway SQLite copy of the admissions table
// for tests.
package storagetest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DitoluT/malackathon2025/internal/dialect"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

const createTableSQL = `
CREATE TABLE ENFERMEDADESMENTALESDIAGNOSTICO (
	"Categoría" TEXT,
	EDAD INTEGER,
	SEXO INTEGER,
	CIRCUNSTANCIA_DE_CONTACTO INTEGER,
	FECHA_DE_INGRESO DATE,
	"Estancia Días" INTEGER,
	"Comunidad Autónoma" TEXT,
	SERVICIO TEXT,
	NOMBRE TEXT,
	FECHA_DE_NACIMIENTO DATE,
	"Diagnóstico Principal" TEXT,
	FECHA_DE_FIN_CONTACTO DATE,
	TIPO_ALTA INTEGER,
	COSTE_APR REAL
);`

const insertSQL = `INSERT INTO ENFERMEDADESMENTALESDIAGNOSTICO VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// RecentAdmission is the admission date of the only record inside the
// trailing twelve months.
func RecentAdmission() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}

// Rows is the seeded data set. Six records; the last one is mostly null.
func Rows() [][]any {
	recent := RecentAdmission().Format(time.DateOnly)
	return [][]any{
		{"Depresión", 34, 1, 1, "2023-03-15", 5, "Andalucía", "PSIQUIATRÍA", "Paciente A", "1989-02-01", "F32.9", "2023-03-20", 1, 1520.5},
		{"Depresión", 70, 2, 1, "2023-03-20", 40, "Andalucía", "PSIQUIATRÍA", "Paciente B", "1953-05-05", "F33.1", "2023-04-29", 1, 4000.0},
		{"Ansiedad", 16, 2, 2, "2023-07-02", 2, "Madrid", "PEDIATRÍA", "Paciente C", "2007-01-10", "F41.1", "2023-07-04", 2, 800.0},
		{"Esquizofrenia", 45, 1, 2, "2023-11-11", 12, "Madrid", "PSIQUIATRÍA", "Paciente D", "1978-08-08", "F20.0", "2023-11-23", 1, 3000.25},
		{"Ansiedad", 22, 3, 1, recent, 20, "Cataluña", "PSIQUIATRÍA", "Paciente E", "2001-09-09", "F41.1", recent, 1, 950.0},
		{"Depresión", nil, nil, nil, nil, nil, nil, nil, "Paciente F", nil, nil, nil, nil, nil},
	}
}

// NewDB creates and seeds a SQLite file under t.TempDir and returns its DSN
// together with an open handle. The handle is closed on test cleanup.
func NewDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "admissions.db")

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database '%s': %v", dsn, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}
	for _, row := range Rows() {
		if _, err := db.Exec(insertSQL, row...); err != nil {
			t.Fatalf("Failed to seed test table: %v", err)
		}
	}
	return db, dsn
}

// NewPool returns a seeded SQLite pool.
func NewPool(t *testing.T) *storage.Pool {
	t.Helper()
	db, _ := NewDB(t)
	return storage.NewPool(db, dialect.SQLite{})
}
