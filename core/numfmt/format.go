package numfmt

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format identifies a number format.
type Format string

const (
	CommaDot   Format = "comma-dot"
	DotComma   Format = "dot-comma"
	SpaceComma Format = "space-comma"
	SpaceDot   Format = "space-dot"
	CommaDotIn Format = "comma-dot-in"
)

// Option describes a selectable number format.
type Option struct {
	Value           Format `json:"value"`
	Label           string `json:"label"`
	LabelNoFraction string `json:"labelNoFraction"`
}

// Formats lists the supported number formats in display order.
var Formats = []Option{
	{Value: CommaDot, Label: "1,000.33", LabelNoFraction: "1,000"},
	{Value: DotComma, Label: "1.000,33", LabelNoFraction: "1.000"},
	{Value: SpaceComma, Label: "1 000,33", LabelNoFraction: "1 000"},
	{Value: SpaceDot, Label: "1 000.33", LabelNoFraction: "1 000"},
	{Value: CommaDotIn, Label: "1,00,000.33", LabelNoFraction: "1,00,000"},
}

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	for _, opt := range Formats {
		if opt.Value == f {
			return true
		}
	}
	return false
}

var (
	keepDot   = regexp.MustCompile(`[^-0-9.]`)
	keepComma = regexp.MustCompile(`[^-0-9,]`)
)

// NumberFormat is an immutable, fully resolved number format.
type NumberFormat struct {
	// Value is the resolved format id.
	Value Format
	// Locale is the locale whose conventions are used for rendering.
	Locale language.Tag
	// Separator is the decimal separator.
	Separator string
	// HideFraction drops decimals when rendering.
	HideFraction bool

	printer *message.Printer
	strip   *regexp.Regexp
}

// New resolves cfg into a NumberFormat. Unknown ids fall back to comma-dot.
func New(cfg Config) *NumberFormat {
	nf := &NumberFormat{HideFraction: cfg.HideFraction}

	switch Format(cfg.Format) {
	case SpaceComma:
		nf.Value, nf.Locale = SpaceComma, language.MustParse("en-ZA")
		nf.strip, nf.Separator = keepComma, ","
	case DotComma:
		nf.Value, nf.Locale = DotComma, language.MustParse("de-DE")
		nf.strip, nf.Separator = keepComma, ","
	case SpaceDot:
		nf.Value, nf.Locale = SpaceDot, language.MustParse("dje")
		nf.strip, nf.Separator = keepDot, "."
	case CommaDotIn:
		nf.Value, nf.Locale = CommaDotIn, language.MustParse("en-IN")
		nf.strip, nf.Separator = keepDot, "."
	default:
		nf.Value, nf.Locale = CommaDot, language.AmericanEnglish
		nf.strip, nf.Separator = keepDot, "."
	}
	nf.printer = message.NewPrinter(nf.Locale)

	return nf
}

// Config returns the configuration this format was built from.
func (nf *NumberFormat) Config() Config {
	return Config{Format: string(nf.Value), HideFraction: nf.HideFraction}
}

// FractionDigits returns the number of decimals rendered.
func (nf *NumberFormat) FractionDigits() int32 {
	if nf.HideFraction {
		return 0
	}
	return 2
}

// Format renders a decimal amount using the format's locale conventions.
// NaN and infinities render as the locale's symbols for them.
func (nf *NumberFormat) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nf.printer.Sprint(number.Decimal(amount))
	}
	return nf.FormatDecimal(decimal.NewFromFloat(amount))
}

// FormatDecimal renders d with fixed fraction digits, rounding half away
// from zero. Values inside the safe envelope render exactly.
func (nf *NumberFormat) FormatDecimal(d decimal.Decimal) string {
	digits := nf.FractionDigits()
	rounded, _ := d.Round(digits).Float64()
	return nf.printer.Sprint(number.Decimal(rounded, number.Scale(int(digits))))
}

// Normalize strips every character the format does not accept and turns
// the first decimal separator into a dot.
func (nf *NumberFormat) Normalize(s string) string {
	return strings.Replace(nf.strip.ReplaceAllString(s, ""), nf.Separator, ".", 1)
}
