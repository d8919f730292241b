package eval

import "math"

// The largest n for which n! is representable as a float64.
const maxFactorial = 170

type fn func(float64) (float64, error)

// total wraps a function from the math package that is defined everywhere.
func total(f func(float64) float64) fn {
	return func(x float64) (float64, error) { return f(x), nil }
}

// within wraps a function from the math package that is only defined when
// ok returns true.
func within(f func(float64) float64, ok func(float64) bool) fn {
	return func(x float64) (float64, error) {
		if !ok(x) {
			return 0, ErrOutOfDomain
		}
		return f(x), nil
	}
}

func unitInterval(x float64) bool { return -1 <= x && x <= 1 }
func positive(x float64) bool     { return x > 0 }
func nonNegative(x float64) bool  { return x >= 0 }

// Trigonometric functions take and return radians.
var fns = map[string]fn{
	"sin":       total(math.Sin),
	"cos":       total(math.Cos),
	"tan":       total(math.Tan),
	"asin":      within(math.Asin, unitInterval),
	"acos":      within(math.Acos, unitInterval),
	"atan":      total(math.Atan),
	"sinh":      total(math.Sinh),
	"cosh":      total(math.Cosh),
	"tanh":      total(math.Tanh),
	"log":       within(math.Log, positive),
	"log10":     within(math.Log10, positive),
	"sqrt":      within(math.Sqrt, nonNegative),
	"factorial": factorial,
}

var consts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, ErrFactorial
	}
	if x > maxFactorial {
		return 0, ErrNotFinite
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}
