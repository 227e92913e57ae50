package months

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03", CurrentMonth(now))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		month string
		n     int
		want  string
	}{
		{"2024-03", 1, "2024-04"},
		{"2024-12", 1, "2025-01"},
		{"2024-01", -1, "2023-12"},
		{"2024-05", 0, "2024-05"},
	}
	for _, tt := range tests {
		got, err := AddMonths(tt.month, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := AddMonths("March", 1)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestPrevMonth(t *testing.T) {
	got, err := PrevMonth("2024-01")
	require.NoError(t, err)
	assert.Equal(t, "2023-12", got)
}

func TestRange(t *testing.T) {
	got, err := Range("2023-11", "2024-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, got)

	got, err = Range("2024-02", "2024-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}
