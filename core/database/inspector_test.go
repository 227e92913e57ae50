package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE budget_amounts (id TEXT PRIMARY KEY, month TEXT NOT NULL, amount INTEGER DEFAULT 0)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "budget_amounts")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byField := make(map[string]ColumnInfo)
	for _, col := range columns {
		byField[col.Field] = col
	}

	assert.Equal(t, "text", byField["id"].Type)
	assert.Equal(t, "PRI", byField["id"].Key)
	assert.Equal(t, "NO", byField["month"].Null)
	assert.Equal(t, "integer", byField["amount"].Type)
	require.NotNil(t, byField["amount"].Default)
	assert.Equal(t, "0", *byField["amount"].Default)

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
