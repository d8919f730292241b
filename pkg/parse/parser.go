package parse

import (
	"fmt"

	"src.calc.sh/pkg/diag"
)

// parser maintains the mutable state of parsing.
type parser struct {
	src    string
	tokens []Token
	pos    int
}

// failure is used to unwind the parser on the first error.
type failure struct{ err *Error }

func (ps *parser) parse() (n Node, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(failure); ok {
			n, err = nil, f.err
			return
		}
		panic(r)
	}()
	n = ps.expr()
	if tok := ps.peek(); tok.Kind != EOF {
		if tok.Kind == RParen {
			ps.fail(tok, "unmatched ')'")
		}
		ps.fail(tok, fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Text))
	}
	return n, nil
}

func (ps *parser) peek() Token { return ps.tokens[ps.pos] }

func (ps *parser) next() Token {
	tok := ps.tokens[ps.pos]
	if tok.Kind != EOF {
		ps.pos++
	}
	return tok
}

func (ps *parser) peekOp(ops ...string) (string, bool) {
	tok := ps.peek()
	if tok.Kind != Operator {
		return "", false
	}
	for _, op := range ops {
		if tok.Text == op {
			return op, true
		}
	}
	return "", false
}

// startsOperand reports whether the token at the given index can begin an
// operand.
func (ps *parser) startsOperand(i int) bool {
	switch ps.tokens[i].Kind {
	case Number, Ident, LParen:
		return true
	}
	return false
}

func (ps *parser) fail(r diag.Ranger, msg string) {
	panic(failure{newError(ps.src, r, msg)})
}

// expr = term { ('+' | '-') term }
func (ps *parser) expr() Node {
	left := ps.term()
	for {
		op, ok := ps.peekOp("+", "-")
		if !ok {
			return left
		}
		ps.next()
		right := ps.term()
		left = &Binary{diag.MixedRanging(left, right), op, left, right}
	}
}

// term = unary { ('*' | '/' | '%') unary }
//
// A '%' that is not followed by an operand has already been consumed as a
// postfix percent by postfix.
func (ps *parser) term() Node {
	left := ps.unary()
	for {
		op, ok := ps.peekOp("*", "/", "%")
		if !ok {
			return left
		}
		ps.next()
		right := ps.unary()
		left = &Binary{diag.MixedRanging(left, right), op, left, right}
	}
}

// unary = ('+' | '-') unary | power
func (ps *parser) unary() Node {
	if op, ok := ps.peekOp("+", "-"); ok {
		tok := ps.next()
		operand := ps.unary()
		return &Unary{diag.MixedRanging(tok, operand), op, operand}
	}
	return ps.power()
}

// power = postfix [ '^' unary ]
func (ps *parser) power() Node {
	base := ps.postfix()
	if _, ok := ps.peekOp("^"); ok {
		ps.next()
		exp := ps.unary()
		return &Binary{diag.MixedRanging(base, exp), "^", base, exp}
	}
	return base
}

// postfix = primary { '!' | '%' }
func (ps *parser) postfix() Node {
	n := ps.primary()
	for {
		op, ok := ps.peekOp("!", "%")
		if !ok {
			return n
		}
		if op == "%" && ps.startsOperand(ps.pos+1) {
			// Binary modulo; leave it to term.
			return n
		}
		tok := ps.next()
		n = &Postfix{diag.MixedRanging(n, tok), op, n}
	}
}

// primary = number | constant | function '(' expr ')' | '(' expr ')'
func (ps *parser) primary() Node {
	tok := ps.next()
	switch tok.Kind {
	case Number:
		return &Num{tok.Ranging, tok.Text, tok.Value}
	case Ident:
		if Constants[tok.Text] {
			return &Const{tok.Ranging, tok.Text}
		}
		if !Functions[tok.Text] {
			ps.fail(tok, fmt.Sprintf("unknown identifier %q", tok.Text))
		}
		if ps.peek().Kind != LParen {
			ps.fail(ps.peek(), fmt.Sprintf("'(' expected after %s", tok.Text))
		}
		ps.next()
		arg := ps.expr()
		end := ps.closeParen()
		return &Call{diag.MixedRanging(tok, end), tok.Text, arg}
	case LParen:
		inner := ps.expr()
		ps.closeParen()
		return inner
	case EOF:
		ps.fail(tok, "incomplete expression")
	default:
		ps.fail(tok, fmt.Sprintf("unexpected %s %q", tok.Kind, tok.Text))
	}
	panic("unreachable")
}

func (ps *parser) closeParen() Token {
	tok := ps.peek()
	if tok.Kind != RParen {
		if tok.Kind == EOF {
			ps.fail(tok, "unclosed '('")
		}
		ps.fail(tok, fmt.Sprintf("')' expected, got %s %q", tok.Kind, tok.Text))
	}
	return ps.next()
}
