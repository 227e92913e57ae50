package numfmt

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// The safe envelope is 2^51 rather than 2^53: at 2^53 a division by 100
// can already land on the wrong cent (9007199254740987 / 100 renders as
// 90071992547409.88), while 2^51 leaves enough headroom for it to be exact.
const (
	MaxSafeNumber = 1<<51 - 1
	MinSafeNumber = -MaxSafeNumber
)

var (
	// ErrNotInteger is returned when a scaled amount has a fractional part.
	ErrNotInteger = errors.New("number is not an integer")
	// ErrUnsafeNumber is returned when a scaled amount is outside ±(2^51 - 1).
	ErrUnsafeNumber = errors.New("can't safely perform arithmetic with number")
)

// SafeNumber returns v unchanged if it is an integer within the safe
// envelope.
func SafeNumber(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("safeNumber: %w: %v", ErrNotInteger, v)
	}
	if v > MaxSafeNumber || v < MinSafeNumber {
		return 0, fmt.Errorf("safeNumber: %w: %v", ErrUnsafeNumber, v)
	}
	return v, nil
}

// SafeInteger returns v unchanged if it is within the safe envelope.
func SafeInteger(v int64) (int64, error) {
	if v > MaxSafeNumber || v < MinSafeNumber {
		return 0, fmt.Errorf("safeNumber: %w: %d", ErrUnsafeNumber, v)
	}
	return v, nil
}

// AmountToInteger scales a decimal amount to whole cents, rounding half
// toward positive infinity. Results outside the safe envelope, NaN and
// infinities are rejected with ErrUnsafeNumber.
func AmountToInteger(n float64) (int64, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("amountToInteger: %w: %v", ErrUnsafeNumber, n)
	}
	cents := roundHalfUp(n * 100)
	if cents > MaxSafeNumber || cents < MinSafeNumber {
		return 0, fmt.Errorf("amountToInteger: %w: %v", ErrUnsafeNumber, n)
	}
	return int64(cents), nil
}

// IntegerToAmount converts whole cents to a decimal amount.
func IntegerToAmount(n int64) (float64, error) {
	if _, err := SafeInteger(n); err != nil {
		return 0, err
	}
	f, _ := decimal.New(n, -2).Float64()
	return f, nil
}

func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}
