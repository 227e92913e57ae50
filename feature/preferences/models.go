package preferences

import "budget-core/core/numfmt"

// Preference keys.
const (
	KeyNumberFormat = "numberFormat"
	KeyHideFraction = "hideFraction"
)

// Preference is a single persisted key/value setting.
type Preference struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Value string `gorm:"size:255" json:"value"`
}

// TableName returns the table name for GORM.
func (Preference) TableName() string {
	return "preferences"
}

// NumberFormatResponse is returned by GET and PUT /preferences/number-format.
type NumberFormatResponse struct {
	Format       numfmt.Format   `json:"format"`
	HideFraction bool            `json:"hideFraction"`
	Options      []numfmt.Option `json:"options"`
}

// NumberFormatRequest is the body of PUT /preferences/number-format.
// A nil HideFraction keeps the current setting.
type NumberFormatRequest struct {
	Format       string `json:"format"`
	HideFraction *bool  `json:"hideFraction"`
}
