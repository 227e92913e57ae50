// Package numfmt converts monetary amounts between their internal scaled
// integer form (whole cents) and user-facing currency text.
//
// # Number Formats
//
// A Format selects the locale used for rendering together with the set of
// characters kept when parsing user input:
//
//	comma-dot     en-US  1,000.33
//	dot-comma     de-DE  1.000,33
//	space-comma   en-ZA  1 000,33
//	space-dot     dje    1 000.33
//	comma-dot-in  en-IN  1,00,000.33
//
// The active configuration lives in a Formatter. SetNumberFormat swaps it
// atomically, so readers always see either the old or the new format, never
// a mix. A process-wide default Formatter backs the package-level functions.
//
// # Safety Envelope
//
// Scaled integers are bounded to ±(2^51 - 1) so that dividing by 100 stays
// exact to the cent. Values outside the envelope, or non-integers, are
// rejected with ErrUnsafeNumber or ErrNotInteger. Unparseable text is not an
// error: parse functions report ok=false instead.
package numfmt
