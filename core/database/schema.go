package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Model is a GORM model that knows its table name.
type Model interface {
	TableName() string
}

// Migrate creates or updates the tables of models.
func Migrate(db *gorm.DB, models ...Model) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.TableName(), err)
		}
	}
	return nil
}

// SchemaIssue describes a table that is missing expected columns.
type SchemaIssue struct {
	Table   string   `json:"table"`
	Missing []string `json:"missing"`
}

func (i SchemaIssue) String() string {
	return fmt.Sprintf("%s: missing %s", i.Table, strings.Join(i.Missing, ", "))
}

// CheckSchema compares the live columns of each model's table with the
// columns GORM derives from the model. A table that does not exist reports
// every column as missing.
func CheckSchema(db *gorm.DB, models ...Model) ([]SchemaIssue, error) {
	var issues []SchemaIssue
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w", m.TableName(), err)
		}

		columns, err := GetTableColumns(db, m.TableName())
		if err != nil {
			return nil, err
		}
		have := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			have[c.Field] = struct{}{}
		}

		var missing []string
		for _, name := range stmt.Schema.DBNames {
			if _, ok := have[strings.ToLower(name)]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			issues = append(issues, SchemaIssue{Table: m.TableName(), Missing: missing})
		}
	}
	return issues, nil
}
