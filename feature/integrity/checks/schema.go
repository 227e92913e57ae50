package checks

import (
	"errors"

	"budget-core/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the live schema against the given models.
func CheckSchema(db *gorm.DB, models ...database.Model) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	issues, err := database.CheckSchema(db, models...)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{Matched: len(issues) == 0, Tables: make(map[string]TableReport, len(models))}
	for _, m := range models {
		report.Tables[m.TableName()] = TableReport{MissingColumns: []string{}, Status: "ok"}
	}
	for _, issue := range issues {
		report.Tables[issue.Table] = TableReport{MissingColumns: issue.Missing, Status: "error"}
	}
	return report, nil
}
