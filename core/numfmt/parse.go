package numfmt

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	floatPrefix   = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?`)
	intPrefix     = regexp.MustCompile(`^[-+]?\d+`)
	integerChars  = regexp.MustCompile(`[^-0-9.,]`)
	numberChars   = regexp.MustCompile(`[^0-9-]`)
	lastSeparator = regexp.MustCompile(`[.,][^.,]*$`)
)

// parseFloatPrefix parses the longest numeric prefix of s, ignoring
// whatever follows it. It reports false if there is no such prefix.
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StringToInteger extracts the leading integer of s after dropping anything
// that is not a digit, sign or separator. "1,234" yields 1.
func StringToInteger(s string) (int64, bool) {
	m := intPrefix.FindString(integerChars.ReplaceAllString(s, ""))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToRelaxedInteger is StringToInteger with 0 for unparseable input.
func ToRelaxedInteger(s string) int64 {
	v, _ := StringToInteger(s)
	return v
}

// LooselyParseAmount parses an amount without assuming any number format.
// It is meant for imported files, where the source locale is unknown.
//
// Parenthesised values are negative. The last '.' or ',' marks the decimal
// point; every other character except digits and '-' is dropped on both
// sides of it. Without such a separator the digits are read as a whole
// number.
func LooselyParseAmount(amount string) (float64, bool) {
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		amount = strings.Replace(amount, "(", "-", 1)
		amount = strings.Replace(amount, ")", "", 1)
	}

	loc := lastSeparator.FindStringIndex(amount)
	if loc == nil || loc[0] == 0 {
		return parseFloatPrefix(numberChars.ReplaceAllString(amount, ""))
	}

	left := numberChars.ReplaceAllString(amount[:loc[0]], "")
	right := numberChars.ReplaceAllString(amount[loc[0]+1:], "")
	return parseFloatPrefix(left + "." + right)
}
