package numfmt

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// Formatter holds the active number format and performs every conversion
// that depends on it. It is safe for concurrent use.
type Formatter struct {
	current atomic.Pointer[NumberFormat]
}

// NewFormatter creates a formatter configured with cfg.
func NewFormatter(cfg Config) *Formatter {
	f := &Formatter{}
	f.SetNumberFormat(cfg)
	return f
}

// SetNumberFormat replaces the active format.
func (f *Formatter) SetNumberFormat(cfg Config) {
	f.current.Store(New(cfg))
}

// NumberFormat returns the active format.
func (f *Formatter) NumberFormat() *NumberFormat {
	return f.current.Load()
}

// IntegerToCurrency renders whole cents as currency text.
func (f *Formatter) IntegerToCurrency(n int64) (string, error) {
	if _, err := SafeInteger(n); err != nil {
		return "", err
	}
	return f.NumberFormat().FormatDecimal(decimal.New(n, -2)), nil
}

// AmountToCurrency renders an already-decimal amount as currency text.
func (f *Formatter) AmountToCurrency(n float64) string {
	return f.NumberFormat().Format(n)
}

// CurrencyToAmount parses currency text written in the active format.
func (f *Formatter) CurrencyToAmount(s string) (float64, bool) {
	return parseFloatPrefix(f.NumberFormat().Normalize(s))
}

// CurrencyToInteger parses currency text into whole cents. Text whose value
// does not fit the safe envelope is reported as unparseable.
func (f *Formatter) CurrencyToInteger(s string) (int64, bool) {
	amount, ok := f.CurrencyToAmount(s)
	if !ok {
		return 0, false
	}
	cents, err := AmountToInteger(amount)
	if err != nil {
		return 0, false
	}
	return cents, true
}

// ToRelaxedNumber parses currency text into a decimal amount, treating
// unparseable text as zero.
func (f *Formatter) ToRelaxedNumber(s string) (float64, error) {
	n, _ := f.CurrencyToInteger(s)
	return IntegerToAmount(n)
}

var std = NewFormatter(DefaultConfig())

// Default returns the process-wide formatter used by the package-level
// functions.
func Default() *Formatter { return std }

// SetNumberFormat reconfigures the default formatter.
func SetNumberFormat(cfg Config) { std.SetNumberFormat(cfg) }

// GetNumberFormat returns the default formatter's active format.
func GetNumberFormat() *NumberFormat { return std.NumberFormat() }

// IntegerToCurrency renders whole cents with the default formatter.
func IntegerToCurrency(n int64) (string, error) { return std.IntegerToCurrency(n) }

// AmountToCurrency renders a decimal amount with the default formatter.
func AmountToCurrency(n float64) string { return std.AmountToCurrency(n) }

// CurrencyToAmount parses currency text with the default formatter.
func CurrencyToAmount(s string) (float64, bool) { return std.CurrencyToAmount(s) }

// CurrencyToInteger parses currency text into cents with the default formatter.
func CurrencyToInteger(s string) (int64, bool) { return std.CurrencyToInteger(s) }

// ToRelaxedNumber parses currency text with the default formatter, treating
// unparseable text as zero.
func ToRelaxedNumber(s string) (float64, error) { return std.ToRelaxedNumber(s) }
