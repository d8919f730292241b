// Package eval evaluates calculator expressions.
//
// Expressions are parsed by the parse package and evaluated by structural
// recursion over the resulting tree, using float64 arithmetic. Evaluation
// fails with a *parse.Error when the expression is not well formed, and with a
// *DomainError when it is well formed but undefined, such as division by zero,
// factorial of a non-integer or any intermediate result that is not finite.
package eval

import (
	"fmt"
	"math"

	"src.calc.sh/pkg/parse"
)

// Evaluate parses and evaluates the given expression text.
func Evaluate(text string) (float64, error) {
	n, err := parse.Parse(text)
	if err != nil {
		return 0, err
	}
	return EvalNode(n)
}

// EvalNode evaluates a parsed expression. It never panics.
func EvalNode(n parse.Node) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, &DomainError{Err: fmt.Errorf("%w: %v", errInternalPanic, r)}
		}
	}()
	return evalNode(n)
}

func evalNode(n parse.Node) (float64, error) {
	switch n := n.(type) {
	case *parse.Num:
		return n.Value, nil
	case *parse.Const:
		v, ok := consts[n.Name]
		if !ok {
			return 0, domainError(n, n.Name, ErrUnknownConst)
		}
		return v, nil
	case *parse.Call:
		f, ok := fns[n.Func]
		if !ok {
			return 0, domainError(n, n.Func, ErrUnknownFunc)
		}
		arg, err := evalNode(n.Arg)
		if err != nil {
			return 0, err
		}
		v, err := f(arg)
		if err != nil {
			return 0, domainError(n, n.Func, err)
		}
		return checkFinite(n, n.Func, v)
	case *parse.Unary:
		x, err := evalNode(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == "-" {
			return -x, nil
		}
		return x, nil
	case *parse.Postfix:
		x, err := evalNode(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == "%" {
			return x / 100, nil
		}
		v, err := factorial(x)
		if err != nil {
			return 0, domainError(n, n.Op, err)
		}
		return v, nil
	case *parse.Binary:
		return evalBinary(n)
	}
	return 0, fmt.Errorf("unknown node type %T", n)
}

func evalBinary(n *parse.Binary) (float64, error) {
	x, err := evalNode(n.Left)
	if err != nil {
		return 0, err
	}
	y, err := evalNode(n.Right)
	if err != nil {
		return 0, err
	}
	var v float64
	switch n.Op {
	case "+":
		v = x + y
	case "-":
		v = x - y
	case "*":
		v = x * y
	case "/":
		if y == 0 {
			return 0, domainError(n, n.Op, ErrDivideByZero)
		}
		v = x / y
	case "%":
		if y == 0 {
			return 0, domainError(n, n.Op, ErrDivideByZero)
		}
		v = math.Mod(x, y)
	case "^":
		v = math.Pow(x, y)
		if math.IsNaN(v) {
			return 0, domainError(n, n.Op, ErrOutOfDomain)
		}
	default:
		return 0, fmt.Errorf("unknown operator %q", n.Op)
	}
	return checkFinite(n, n.Op, v)
}

func checkFinite(n parse.Node, op string, v float64) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, domainError(n, op, ErrNotFinite)
	}
	return v, nil
}
