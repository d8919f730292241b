// Package parse implements the parser for calculator expressions.
//
// An expression is first split into tokens by Scan, which also performs the
// canonicalization of display glyphs (× and ÷). The parser then builds an
// AST by recursive descent, with the following precedence, from loosest to
// tightest:
//
//	+ -        binary, left associative
//	* / %      binary, left associative (% is modulo)
//	+ -        unary prefix
//	^          binary, right associative; the exponent may carry a sign
//	! %        postfix (factorial and percent)
//
// Identifiers are either one of the constants pi and e, or one of the
// functions in [Functions], which must be followed by a parenthesized
// argument.
package parse

import (
	"strings"

	"src.calc.sh/pkg/diag"
)

// Error is a parse error.
type Error = diag.Error

const errorType = "parse error"

func newError(src string, r diag.Ranger, msg string) *Error {
	return &Error{
		Type:    errorType,
		Message: msg,
		Context: *diag.NewContext(src, r),
		Partial: r.Range().From == len(src),
	}
}

// Node is an AST node.
type Node interface {
	diag.Ranger
	String() string
}

// Num is a numeric literal.
type Num struct {
	diag.Ranging
	Text  string
	Value float64
}

// Const is a reference to a named constant.
type Const struct {
	diag.Ranging
	Name string
}

// Call is a function call with a single argument.
type Call struct {
	diag.Ranging
	Func string
	Arg  Node
}

// Unary is a prefix operation.
type Unary struct {
	diag.Ranging
	Op      string
	Operand Node
}

// Postfix is a postfix operation: factorial or percent.
type Postfix struct {
	diag.Ranging
	Op      string
	Operand Node
}

// Binary is an infix operation.
type Binary struct {
	diag.Ranging
	Op          string
	Left, Right Node
}

func (n *Num) String() string   { return n.Text }
func (n *Const) String() string { return n.Name }
func (n *Call) String() string  { return n.Func + "(" + n.Arg.String() + ")" }

func (n *Unary) String() string {
	return "(" + n.Op + n.Operand.String() + ")"
}

func (n *Postfix) String() string {
	return "(" + n.Operand.String() + n.Op + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

// Constants lists the names of the supported constants.
var Constants = map[string]bool{"pi": true, "e": true}

// Functions lists the names of the supported single-argument functions.
var Functions = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"log": true, "log10": true, "sqrt": true,
	"factorial": true,
}

// Parse parses the given source as an expression. The returned error always
// has type *Error if it is not nil.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, newError(src, diag.PointRanging(len(src)), "empty expression")
	}
	tokens, err := Scan(src)
	if err != nil {
		return nil, err
	}
	ps := &parser{src: src, tokens: tokens}
	return ps.parse()
}
