package transactions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Payee,Amount,Notes
2024-03-01,Grocer,-12.50,weekly
2024-03-02,Employer,"2,500.00",
2024-03-03,Cafe,abc,
2024-03-04,Landlord,(900),rent
`

func TestParseCSV(t *testing.T) {
	rows, skipped, err := ParseCSV("acc-1", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "acc-1", rows[0].AccountID)
	assert.Equal(t, "2024-03-01", rows[0].Date)
	assert.Equal(t, "Grocer", rows[0].Payee)
	assert.Equal(t, "weekly", rows[0].Notes)
	assert.Equal(t, int64(-1250), rows[0].Amount)
	assert.Equal(t, int64(250000), rows[1].Amount)
	assert.Equal(t, int64(-90000), rows[2].Amount)

	assert.Equal(t, []RowError{{Line: 4, Reason: `invalid amount "abc"`}}, skipped)
}

func TestParseCSV_DeterministicIDs(t *testing.T) {
	first, _, err := ParseCSV("acc-1", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	second, _, err := ParseCSV("acc-1", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	other, _, err := ParseCSV("acc-2", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	for i := range first {
		assert.NotEmpty(t, first[i].ID)
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.NotEqual(t, first[i].ID, other[i].ID)
	}

	dup := "date,amount\n2024-01-01,5\n2024-01-01,5\n"
	rows, _, err := ParseCSV("acc-1", strings.NewReader(dup))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}

func TestParseCSV_ExplicitID(t *testing.T) {
	rows, _, err := ParseCSV("acc-1", strings.NewReader("ID,Date,Amount\nbank-42,2024-01-01,1.5\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bank-42", rows[0].ID)
	assert.Equal(t, int64(150), rows[0].Amount)
}

func TestParseCSV_RowErrors(t *testing.T) {
	in := "date,amount\n,5\n01/02/2024,5\n2024-02-01\n"
	rows, skipped, err := ParseCSV("acc-1", strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, []RowError{
		{Line: 2, Reason: "missing date"},
		{Line: 3, Reason: `invalid date "01/02/2024"`},
		{Line: 4, Reason: `invalid amount ""`},
	}, skipped)
}

func TestParseCSV_AmountOutOfRange(t *testing.T) {
	in := "date,amount\n2024-01-01,99999999999999999999.00\n2024-01-02,-100000000000000000000\n2024-01-03,12.50\n"
	rows, skipped, err := ParseCSV("acc-1", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1250), rows[0].Amount)
	assert.Equal(t, []RowError{
		{Line: 2, Reason: `amount out of range "99999999999999999999.00"`},
		{Line: 3, Reason: `amount out of range "-100000000000000000000"`},
	}, skipped)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty file", ""},
		{"no amount", "date,payee\n2024-01-01,x\n"},
		{"no date", "amount\n5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCSV("acc-1", strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMissingColumn)
		})
	}
}

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/imports/march.csv.json", ReportKey("imports/march.csv"))
	assert.Equal(t, "reports/march.csv.json", ReportKey("/march.csv"))
}
