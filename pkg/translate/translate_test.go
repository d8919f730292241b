package translate

import (
	"testing"

	"src.calc.sh/pkg/eval"
	"src.calc.sh/pkg/tt"
)

func TestTranslate(t *testing.T) {
	tt.Test(t, tt.Fn("Translate", Translate), tt.Table{
		tt.Args("sin").Rets("sin("),
		tt.Args("cos").Rets("cos("),
		tt.Args("tan").Rets("tan("),
		tt.Args("sinh").Rets("sinh("),
		tt.Args("cosh").Rets("cosh("),
		tt.Args("tanh").Rets("tanh("),
		tt.Args("sin⁻¹").Rets("asin("),
		tt.Args("cos⁻¹").Rets("acos("),
		tt.Args("tan⁻¹").Rets("atan("),
		tt.Args("log").Rets("log10("),
		tt.Args("ln").Rets("log("),
		tt.Args("√").Rets("sqrt("),
		tt.Args("x²").Rets("^2"),
		tt.Args("xʸ").Rets("^"),
		tt.Args("10ˣ").Rets("10^"),
		tt.Args("x!").Rets("!"),
		tt.Args("π").Rets("pi"),
		tt.Args("e").Rets("e"),
		tt.Args("×").Rets("*"),
		tt.Args("÷").Rets("/"),
		tt.Args("%").Rets("%"),

		// Pass-through.
		tt.Args("7").Rets("7"),
		tt.Args("42").Rets("42"),
		tt.Args(".").Rets("."),
		tt.Args("+").Rets("+"),
		tt.Args("-").Rets("-"),
		tt.Args("(").Rets("("),
		tt.Args(")").Rets(")"),
		tt.Args("").Rets(""),
		tt.Args("unknown").Rets("unknown"),
	})
}

func TestIsMemory(t *testing.T) {
	tt.Test(t, tt.Fn("IsMemory", IsMemory), tt.Table{
		tt.Args("MC").Rets(true),
		tt.Args("MR").Rets(true),
		tt.Args("M+").Rets(true),
		tt.Args("M-").Rets(true),
		tt.Args("mc").Rets(false),
		tt.Args("M").Rets(false),
	})
}

func TestTokens(t *testing.T) {
	tokens := Tokens()
	if len(tokens) != len(fragments) {
		t.Fatalf("Tokens() returned %d tokens, want %d", len(tokens), len(fragments))
	}
	seen := map[string]bool{}
	for i, token := range tokens {
		if seen[token] {
			t.Errorf("token %q listed twice", token)
		}
		seen[token] = true
		if i > 0 && tokens[i-1] > token {
			t.Errorf("Tokens() not sorted at %d", i)
		}
		if IsMemory(token) {
			t.Errorf("memory key %q has a translation", token)
		}
	}
}

// Each fragment, completed with an operand where needed, must be accepted
// by the evaluator.
func TestFragmentsEvaluate(t *testing.T) {
	for _, token := range Tokens() {
		var expr string
		switch fragment := Translate(token); fragment {
		case "pi", "e":
			expr = fragment
		case "^2", "^", "!", "*", "/", "%":
			expr = "3" + fragment
			if fragment != "^2" && fragment != "!" && fragment != "%" {
				expr += "2"
			}
		case "10^":
			expr = fragment + "2"
		default:
			expr = fragment + "0.5)"
		}
		if _, err := eval.Evaluate(expr); err != nil {
			t.Errorf("token %q: Evaluate(%q) -> %v", token, expr, err)
		}
	}
}
