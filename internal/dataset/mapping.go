// Package dataset describes the admissions table: its name, the columns the
// fixed endpoints read and the example queries offered to clients.
package dataset

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DitoluT/malackathon2025/internal/core"
)

// Columns names the source columns used by aggregates and listings.
type Columns struct {
	Category         string `yaml:"category"`
	Age              string `yaml:"age"`
	Sex              string `yaml:"sex"`
	ContactType      string `yaml:"contact_type"`
	AdmissionDate    string `yaml:"admission_date"`
	StayDays         string `yaml:"stay_days"`
	Region           string `yaml:"region"`
	Service          string `yaml:"service"`
	Name             string `yaml:"name"`
	BirthDate        string `yaml:"birth_date"`
	PrimaryDiagnosis string `yaml:"primary_diagnosis"`
	ContactEndDate   string `yaml:"contact_end_date"`
	DischargeType    string `yaml:"discharge_type"`
}

// Mapping binds the service to one physical table.
type Mapping struct {
	Table   string  `yaml:"table"`
	Columns Columns `yaml:"columns"`
}

// Default is the layout of the ENFERMEDADESMENTALESDIAGNOSTICO table.
func Default() Mapping {
	return Mapping{
		Table: "ENFERMEDADESMENTALESDIAGNOSTICO",
		Columns: Columns{
			Category:         "Categoría",
			Age:              "EDAD",
			Sex:              "SEXO",
			ContactType:      "CIRCUNSTANCIA_DE_CONTACTO",
			AdmissionDate:    "FECHA_DE_INGRESO",
			StayDays:         "Estancia Días",
			Region:           "Comunidad Autónoma",
			Service:          "SERVICIO",
			Name:             "NOMBRE",
			BirthDate:        "FECHA_DE_NACIMIENTO",
			PrimaryDiagnosis: "Diagnóstico Principal",
			ContactEndDate:   "FECHA_DE_FIN_CONTACTO",
			DischargeType:    "TIPO_ALTA",
		},
	}
}

// Load reads a YAML mapping from path. Keys missing from the file keep
// their default values. An empty path returns Default().
func Load(path string) (Mapping, error) {
	m := Default()
	if path == "" {
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("reading dataset mapping %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Mapping{}, fmt.Errorf("parsing dataset mapping %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Validate checks that the table name is a plain identifier and every
// column is named.
func (m Mapping) Validate() error {
	if !core.IsValidIdentifier(m.Table) {
		return fmt.Errorf("invalid dataset table name %q", m.Table)
	}
	c := m.Columns
	for _, col := range []string{
		c.Category, c.Age, c.Sex, c.ContactType, c.AdmissionDate, c.StayDays, c.Region,
		c.Service, c.Name, c.BirthDate, c.PrimaryDiagnosis, c.ContactEndDate, c.DischargeType,
	} {
		if col == "" {
			return errors.New("dataset mapping has an empty column name")
		}
	}
	return nil
}
