package transactions

import (
	"budget-core/core/reconcile"
)

// Transaction is one booked movement on an account. Amount is in cents.
type Transaction struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	AccountID string `gorm:"size:36;index;not null" json:"account_id"`
	Date      string `gorm:"size:10;index;not null" json:"date"`
	Payee     string `gorm:"size:255" json:"payee"`
	Notes     string `gorm:"type:text" json:"notes"`
	Amount    int64  `gorm:"not null;default:0" json:"amount"`
}

// TableName returns the table name for GORM.
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionView is a transaction with its amount rendered in the active
// number format.
type TransactionView struct {
	Transaction
	AmountFormatted string `json:"amount_formatted"`
}

// ImportRequest is the body of POST /transactions/import.
type ImportRequest struct {
	Account string `json:"account"`
	Object  string `json:"object"`
	Purge   bool   `json:"purge"`
	DryRun  bool   `json:"dry_run"`
	Confirm bool   `json:"confirm"`
}

// Options converts the request flags into reconcile options.
func (r ImportRequest) Options() reconcile.Options {
	return reconcile.Options{
		DryRun:    r.DryRun,
		DoPurge:   r.Purge,
		Confirmed: r.Confirm,
	}
}

// RowError describes a file row that was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of planning, and possibly applying, an import.
type ImportResult struct {
	Account  string          `json:"account"`
	Object   string          `json:"object"`
	Rows     int             `json:"rows"`
	Errors   []RowError      `json:"errors"`
	Plan     *reconcile.Plan `json:"plan"`
	Applied  bool            `json:"applied"`
	Executed int             `json:"executed"`
	Report   string          `json:"report,omitempty"`
}
