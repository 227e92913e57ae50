package utils

import (
	"unicode"
	"unicode/utf8"
)

// MergeSets returns a new set holding every member of a and b.
// Neither input is modified.
func MergeSets[T comparable](a, b map[T]struct{}) map[T]struct{} {
	out := make(map[T]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// TitleFirst upper-cases the first rune of s.
func TitleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
