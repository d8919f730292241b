package parse_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.calc.sh/pkg/diag"
	. "src.calc.sh/pkg/parse"
	"src.calc.sh/pkg/tt"
)

func parseString(src string) (string, error) {
	n, err := Parse(src)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func TestParse(t *testing.T) {
	tt.Test(t, tt.Fn("Parse", parseString), tt.Table{
		tt.Args("2+2").Rets("(2 + 2)", nil),
		tt.Args(" 2 + 3 * 4 ").Rets("(2 + (3 * 4))", nil),
		tt.Args("2×3÷4").Rets("((2 * 3) / 4)", nil),
		tt.Args("10-4-3").Rets("((10 - 4) - 3)", nil),
		tt.Args("(1+2)*3").Rets("((1 + 2) * 3)", nil),
		tt.Args(".5+1.").Rets("(.5 + 1.)", nil),

		// Power is right associative and binds tighter than unary minus.
		tt.Args("2^3^2").Rets("(2 ^ (3 ^ 2))", nil),
		tt.Args("-2^2").Rets("(-(2 ^ 2))", nil),
		tt.Args("2^-1").Rets("(2 ^ (-1))", nil),
		tt.Args("--3").Rets("(-(-3))", nil),

		// Factorial binds tightest.
		tt.Args("10!").Rets("(10!)", nil),
		tt.Args("3!!").Rets("((3!)!)", nil),
		tt.Args("-3!").Rets("(-(3!))", nil),
		tt.Args("2^3!").Rets("(2 ^ (3!))", nil),

		// % is modulo when followed by an operand, percent otherwise.
		tt.Args("7%3").Rets("(7 % 3)", nil),
		tt.Args("50%").Rets("(50%)", nil),
		tt.Args("200*5%").Rets("(200 * (5%))", nil),
		tt.Args("50%+1").Rets("((50%) + 1)", nil),

		// Constants and functions.
		tt.Args("pi").Rets("pi", nil),
		tt.Args("e^2").Rets("(e ^ 2)", nil),
		tt.Args("sqrt(16)").Rets("sqrt(16)", nil),
		tt.Args("asin(1)+log10(100)").Rets("(asin(1) + log10(100))", nil),
		tt.Args("factorial(5)").Rets("factorial(5)", nil),
		tt.Args("sin(pi/2)").Rets("sin((pi / 2))", nil),

		// Errors.
		tt.Args("").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("2+").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("sin(").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("(1+2").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("1+2)").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("2pi").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("foo(1)").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("sqrt 4").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("1..2").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("2$3").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("()").Rets("", tt.ErrorOfType(&Error{})),
		tt.Args("Error").Rets("", tt.ErrorOfType(&Error{})),
	})
}

func TestParse_ErrorDetails(t *testing.T) {
	tests := []struct {
		src         string
		wantRange   diag.Ranging
		wantMessage string
		wantPartial bool
	}{
		{"2+", diag.Ranging{From: 2, To: 2}, "incomplete expression", true},
		{"sqrt(9", diag.Ranging{From: 6, To: 6}, "unclosed '('", true},
		{"2+*3", diag.Ranging{From: 2, To: 3}, `unexpected operator "*"`, false},
		{"1+2)", diag.Ranging{From: 3, To: 4}, "unmatched ')'", false},
		{"cot(1)", diag.Ranging{From: 0, To: 3}, `unknown identifier "cot"`, false},
		{"3×#", diag.Ranging{From: 3, To: 4}, `unexpected character '#'`, false},
		{"  ", diag.Ranging{From: 2, To: 2}, "empty expression", true},
	}
	for _, test := range tests {
		_, err := Parse(test.src)
		var perr *Error
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) -> error %v, want *Error", test.src, err)
			continue
		}
		if perr.Range() != test.wantRange {
			t.Errorf("Parse(%q) error range %v, want %v", test.src, perr.Range(), test.wantRange)
		}
		if perr.Message != test.wantMessage {
			t.Errorf("Parse(%q) error message %q, want %q", test.src, perr.Message, test.wantMessage)
		}
		if perr.Partial != test.wantPartial {
			t.Errorf("Parse(%q) error partial %v, want %v", test.src, perr.Partial, test.wantPartial)
		}
	}
}

func TestParse_Ranges(t *testing.T) {
	n, err := Parse("1 + sqrt(4)")
	if err != nil {
		t.Fatal(err)
	}
	bin, ok := n.(*Binary)
	if !ok {
		t.Fatalf("got %T, want *Binary", n)
	}
	if want := (diag.Ranging{From: 0, To: 11}); bin.Range() != want {
		t.Errorf("binary range %v, want %v", bin.Range(), want)
	}
	if want := (diag.Ranging{From: 4, To: 11}); bin.Right.Range() != want {
		t.Errorf("call range %v, want %v", bin.Right.Range(), want)
	}
}

func TestScan_CanonicalizesGlyphs(t *testing.T) {
	tokens, err := Scan("6×7÷2")
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	want := []string{"6", "*", "7", "/", "2", ""}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("Scan token texts (-want +got):\n%s", diff)
	}
	if last := tokens[len(tokens)-1]; last.Kind != EOF {
		t.Errorf("last token kind %v, want EOF", last.Kind)
	}
}
