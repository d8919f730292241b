package parse

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"src.calc.sh/pkg/diag"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	Number
	Ident
	Operator
	LParen
	RParen
)

var tokenKindNames = [...]string{
	"end of input", "number", "identifier", "operator", "'('", "')'"}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Token is a lexical unit of an expression. For operators, Text is already in
// canonical form: the display glyphs × and ÷ are scanned as * and /.
type Token struct {
	diag.Ranging
	Kind  TokenKind
	Text  string
	Value float64
}

// Operator glyphs accepted on input, mapped to their canonical form.
var operators = map[rune]string{
	'+': "+", '-': "-", '−': "-",
	'*': "*", '×': "*",
	'/': "/", '÷': "/",
	'^': "^", '!': "!", '%': "%",
}

// Scan splits src into tokens. The last token always has kind EOF. The
// returned error, if not nil, has type *Error.
func Scan(src string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		switch {
		case unicode.IsSpace(r):
			pos += size
		case isDigit(r) || r == '.':
			tok, err := scanNumber(src, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos = tok.To
		case isIdentRune(r):
			end := pos
			for end < len(src) {
				r, size := utf8.DecodeRuneInString(src[end:])
				if !isIdentRune(r) && !isDigit(r) {
					break
				}
				end += size
			}
			tokens = append(tokens, Token{
				Ranging: diag.Ranging{From: pos, To: end}, Kind: Ident, Text: src[pos:end]})
			pos = end
		case r == '(':
			tokens = append(tokens, Token{
				Ranging: diag.Ranging{From: pos, To: pos + size}, Kind: LParen, Text: "("})
			pos += size
		case r == ')':
			tokens = append(tokens, Token{
				Ranging: diag.Ranging{From: pos, To: pos + size}, Kind: RParen, Text: ")"})
			pos += size
		default:
			op, ok := operators[r]
			if !ok {
				return nil, newError(src, diag.Ranging{From: pos, To: pos + size},
					fmt.Sprintf("unexpected character %q", r))
			}
			tokens = append(tokens, Token{
				Ranging: diag.Ranging{From: pos, To: pos + size}, Kind: Operator, Text: op})
			pos += size
		}
	}
	tokens = append(tokens, Token{Ranging: diag.PointRanging(len(src)), Kind: EOF})
	return tokens, nil
}

func scanNumber(src string, from int) (Token, error) {
	end := from
	sawDot := false
	for end < len(src) {
		c := src[end]
		if c == '.' {
			if sawDot {
				break
			}
			sawDot = true
		} else if !isDigit(rune(c)) {
			break
		}
		end++
	}
	r := diag.Ranging{From: from, To: end}
	text := src[from:end]
	if text == "." {
		return Token{}, newError(src, r, "lone decimal point")
	}
	if end < len(src) && src[end] == '.' {
		return Token{}, newError(src, diag.Ranging{From: end, To: end + 1},
			"second decimal point in number")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, newError(src, r, "bad number "+text)
	}
	return Token{Ranging: r, Kind: Number, Text: text, Value: v}, nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
