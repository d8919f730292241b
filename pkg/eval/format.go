package eval

import (
	"strconv"
	"strings"
)

// Precision is the default number of decimal places used by Format.
const Precision = 10

// Format formats a result as a fixed-point decimal with Precision places,
// then strips trailing zeros and an unnecessary trailing decimal point.
func Format(v float64) string { return FormatPrec(v, Precision) }

// FormatPrec is like Format, but uses the given number of decimal places.
func FormatPrec(v float64, prec int) string {
	if prec < 0 {
		prec = 0
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
