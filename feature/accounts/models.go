package accounts

// Account is a ledger account. Balance is in integer cents.
type Account struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Offbudget bool   `gorm:"not null;default:false" json:"offbudget"`
	Closed    bool   `gorm:"not null;default:false" json:"closed"`
	SortOrder int64  `gorm:"not null;default:0" json:"sort_order"`
	Balance   int64  `gorm:"not null;default:0" json:"balance"`
}

// TableName returns the table name for GORM.
func (Account) TableName() string {
	return "accounts"
}

// AccountView is an account with its balance rendered in the current number format.
type AccountView struct {
	Account
	BalanceFormatted string `json:"balance_formatted"`
}

// CreateRequest is the body of POST /accounts.
type CreateRequest struct {
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Offbudget bool   `json:"offbudget"`
}
