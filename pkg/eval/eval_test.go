package eval_test

import (
	"errors"
	"math"
	"testing"

	"src.calc.sh/pkg/diag"
	. "src.calc.sh/pkg/eval"
	"src.calc.sh/pkg/parse"
	"src.calc.sh/pkg/tt"
)

var parseError = tt.ErrorOfType(&parse.Error{})

func TestEvaluate(t *testing.T) {
	tt.Test(t, tt.Fn("Evaluate", Evaluate), tt.Table{
		// Arithmetic and precedence.
		tt.Args("2+2").Rets(4.0, nil),
		tt.Args("2+3*4").Rets(14.0, nil),
		tt.Args("2×3").Rets(6.0, nil),
		tt.Args("9÷4").Rets(2.25, nil),
		tt.Args("(2+3)*4").Rets(20.0, nil),
		tt.Args("10-4-3").Rets(3.0, nil),
		tt.Args("-3+5").Rets(2.0, nil),
		tt.Args("2^10").Rets(1024.0, nil),
		tt.Args("2^3^2").Rets(512.0, nil),
		tt.Args("-2^2").Rets(-4.0, nil),
		tt.Args("2^-1").Rets(0.5, nil),
		tt.Args("7%3").Rets(1.0, nil),
		tt.Args("50%").Rets(0.5, nil),
		tt.Args("200*5%").Rets(10.0, nil),

		// Factorial.
		tt.Args("10!").Rets(3628800.0, nil),
		tt.Args("0!").Rets(1.0, nil),
		tt.Args("3!!").Rets(720.0, nil),
		tt.Args("factorial(5)").Rets(120.0, nil),
		tt.Args("2.5!").Rets(0.0, ErrFactorial),
		tt.Args("(-3)!").Rets(0.0, ErrFactorial),
		tt.Args("171!").Rets(0.0, ErrNotFinite),

		// Constants.
		tt.Args("pi").Rets(math.Pi, nil),
		tt.Args("e").Rets(math.E, nil),
		tt.Args("2*pi").Rets(2*math.Pi, nil),
		tt.Args("e^2").Rets(math.E*math.E, nil),

		// Functions, in radians.
		tt.Args("sin(0)").Rets(0.0, nil),
		tt.Args("sin(pi/2)").Rets(1.0, nil),
		tt.Args("cos(pi)").Rets(-1.0, nil),
		tt.Args("tan(0)").Rets(0.0, nil),
		tt.Args("asin(1)").Rets(math.Pi/2, nil),
		tt.Args("acos(1)").Rets(0.0, nil),
		tt.Args("atan(1)").Rets(math.Pi/4, nil),
		tt.Args("sinh(0)").Rets(0.0, nil),
		tt.Args("cosh(0)").Rets(1.0, nil),
		tt.Args("tanh(0)").Rets(0.0, nil),
		tt.Args("log(e)").Rets(1.0, nil),
		tt.Args("log10(1000)").Rets(3.0, nil),
		tt.Args("sqrt(144)").Rets(12.0, nil),
		tt.Args("10^2").Rets(100.0, nil),

		// Domain errors.
		tt.Args("1/0").Rets(0.0, ErrDivideByZero),
		tt.Args("5%0").Rets(0.0, ErrDivideByZero),
		tt.Args("asin(2)").Rets(0.0, ErrOutOfDomain),
		tt.Args("sqrt(-1)").Rets(0.0, ErrOutOfDomain),
		tt.Args("log(0)").Rets(0.0, ErrOutOfDomain),
		tt.Args("log10(-5)").Rets(0.0, ErrOutOfDomain),
		tt.Args("(-8)^(1/3)").Rets(0.0, ErrOutOfDomain),
		tt.Args("0^-1").Rets(0.0, ErrNotFinite),
		tt.Args("10^400").Rets(0.0, ErrNotFinite),

		// Parse errors.
		tt.Args("").Rets(0.0, parseError),
		tt.Args("2+").Rets(0.0, parseError),
		tt.Args("sqrt(").Rets(0.0, parseError),
		tt.Args("2**3").Rets(0.0, parseError),
		tt.Args("Error").Rets(0.0, parseError),
	})
}

func TestEvaluate_DomainErrorRange(t *testing.T) {
	_, err := Evaluate("1+2/0")
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("got error %v, want *DomainError", err)
	}
	if want := (diag.Ranging{From: 2, To: 5}); derr.Range() != want {
		t.Errorf("range %v, want %v", derr.Range(), want)
	}
	if derr.Op != "/" {
		t.Errorf("op %q, want %q", derr.Op, "/")
	}
}

func TestEvaluate_EveryFunctionIsImplemented(t *testing.T) {
	for name := range parse.Functions {
		_, err := Evaluate(name + "(1)")
		if errors.Is(err, ErrUnknownFunc) {
			t.Errorf("function %s is parsed but not implemented", name)
		}
	}
	for name := range parse.Constants {
		if _, err := Evaluate(name); err != nil {
			t.Errorf("constant %s: %v", name, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tt.Test(t, tt.Fn("Format", Format), tt.Table{
		tt.Args(4.0).Rets("4"),
		tt.Args(10.0).Rets("10"),
		tt.Args(100.0).Rets("100"),
		tt.Args(3628800.0).Rets("3628800"),
		tt.Args(2.5).Rets("2.5"),
		tt.Args(-0.125).Rets("-0.125"),
		tt.Args(0.1 + 0.2).Rets("0.3"),
		tt.Args(math.Pi).Rets("3.1415926536"),
		tt.Args(1e-12).Rets("0"),
		tt.Args(-1e-12).Rets("0"),
		tt.Args(0.0).Rets("0"),
	})
	tt.Test(t, tt.Fn("FormatPrec", FormatPrec), tt.Table{
		tt.Args(math.Pi, 2).Rets("3.14"),
		tt.Args(100.0, 0).Rets("100"),
		tt.Args(2.0, -1).Rets("2"),
	})
}
