// Package months works with budget months in "YYYY-MM" form.
package months

import (
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01"

// ErrInvalidMonth is returned for strings that are not "YYYY-MM".
var ErrInvalidMonth = errors.New("invalid month")

// CurrentMonth returns the month containing now.
func CurrentMonth(now time.Time) string {
	return now.Format(layout)
}

// Parse validates a month string and returns the first instant of it in UTC.
func Parse(month string) (time.Time, error) {
	t, err := time.Parse(layout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidMonth, month, err)
	}
	return t, nil
}

// AddMonths shifts month by n months (n may be negative).
func AddMonths(month string, n int) (string, error) {
	t, err := Parse(month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, n, 0).Format(layout), nil
}

// PrevMonth returns the month before month.
func PrevMonth(month string) (string, error) {
	return AddMonths(month, -1)
}

// Range returns every month from start to end inclusive.
func Range(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}

	var out []string
	for t := s; !t.After(e); t = t.AddDate(0, 1, 0) {
		out = append(out, t.Format(layout))
	}
	return out, nil
}
