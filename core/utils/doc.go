// Package utils provides small helpers shared across budget-core packages.
// It includes loose conversions for values read from CSV cells and database
// rows, set merging, and string casing.
package utils
