package livequery

import (
	"context"
	"fmt"

	"budget-core/core/diff"

	"gorm.io/gorm"
)

// TableQuery returns a QueryFunc reading every row of table as a record.
// order is passed to ORDER BY when non-empty; scopes narrow the selection.
func TableQuery(db *gorm.DB, table, order string, scopes ...func(*gorm.DB) *gorm.DB) QueryFunc {
	return func(ctx context.Context) ([]diff.Record, error) {
		tx := db.WithContext(ctx).Table(table).Scopes(scopes...)
		if order != "" {
			tx = tx.Order(order)
		}

		var rows []map[string]any
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("query table %s: %w", table, err)
		}

		out := make([]diff.Record, len(rows))
		for i, row := range rows {
			for k, v := range row {
				if b, ok := v.([]byte); ok {
					row[k] = string(b)
				}
			}
			out[i] = diff.Record(row)
		}
		return out, nil
	}
}
