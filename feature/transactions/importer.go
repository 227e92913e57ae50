package transactions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"budget-core/core/numfmt"

	"github.com/google/uuid"
)

// ErrMissingColumn is returned when a file lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var idNamespace = uuid.MustParse("8c0f2f4e-6b1d-5a3e-9f47-2d6c1b0e7a93")

const dateLayout = "2006-01-02"

// ParseCSV reads transactions for account from r. The first row is the
// header; date and amount columns are required, payee, notes and id are
// optional. Rows that cannot be read are reported and skipped.
func ParseCSV(account string, r io.Reader) ([]Transaction, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: date", ErrMissingColumn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{"date", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		out     []Transaction
		skipped []RowError
		seen    = make(map[string]int)
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		date := field(row, "date")
		if date == "" {
			skipped = append(skipped, RowError{Line: line, Reason: "missing date"})
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: fmt.Sprintf("invalid date %q", date)})
			continue
		}

		amountText := field(row, "amount")
		amount, ok := numfmt.LooselyParseAmount(amountText)
		if !ok {
			skipped = append(skipped, RowError{Line: line, Reason: fmt.Sprintf("invalid amount %q", amountText)})
			continue
		}
		cents, err := numfmt.AmountToInteger(amount)
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: fmt.Sprintf("amount out of range %q", amountText)})
			continue
		}

		t := Transaction{
			ID:        field(row, "id"),
			AccountID: account,
			Date:      date,
			Payee:     field(row, "payee"),
			Notes:     field(row, "notes"),
			Amount:    cents,
		}
		if t.ID == "" {
			key := rowKey(t)
			t.ID = uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s\x00%d", key, seen[key]))).String()
			seen[key]++
		}
		out = append(out, t)
	}

	return out, skipped, nil
}

// rowKey identifies a row by its contents. Identical rows are told apart by
// their occurrence count.
func rowKey(t Transaction) string {
	return strings.Join([]string{t.AccountID, t.Date, t.Payee, t.Notes, fmt.Sprint(t.Amount)}, "\x00")
}
