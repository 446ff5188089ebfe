package token

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	INVALID Kind = iota

	// Literals and identifiers.
	NUMBER
	STRING
	VARIABLE
	OPERATOR
	LIST

	// Structural markers.
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACKET
	RIGHTBRACKET
	LEFTBRACE
	RIGHTBRACE

	// Reserved names bound inside custom operators.
	LEFTREF
	RIGHTREF
)

// Fixity is the position of an operator relative to its operands.
type Fixity int

const (
	Prefix Fixity = iota
	Infix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	}
	return fmt.Sprintf("Fixity(%d)", int(f))
}

// Token is a single element of an expression, either as scanned from source or
// as computed by the evaluator. Tokens are values: nothing in this module
// modifies a Token after it has been built.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    int

	// Number is set for NUMBER tokens.
	Number *apd.Decimal
	// Elems is set for LIST tokens.
	Elems []Token
	// Fixity is meaningful for OPERATOR tokens only.
	Fixity Fixity
}

// NewNumber returns a NUMBER token holding a copy of d.
func NewNumber(d *apd.Decimal, pos int) Token {
	n := new(apd.Decimal).Set(d)
	return Token{Kind: NUMBER, Lexeme: n.Text('f'), Pos: pos, Number: n}
}

func NewString(s string, pos int) Token {
	return Token{Kind: STRING, Lexeme: s, Pos: pos}
}

func NewVariable(name string, pos int) Token {
	return Token{Kind: VARIABLE, Lexeme: name, Pos: pos}
}

func NewOperator(symbol string, fixity Fixity, pos int) Token {
	return Token{Kind: OPERATOR, Lexeme: symbol, Pos: pos, Fixity: fixity}
}

// NewList returns a LIST token. The elements are copied.
func NewList(elems []Token) Token {
	return Token{Kind: LIST, Pos: -1, Elems: append([]Token(nil), elems...)}
}

var symbols = map[Kind]string{
	LEFTPAREN:    "(",
	RIGHTPAREN:   ")",
	LEFTBRACKET:  "[",
	RIGHTBRACKET: "]",
	LEFTBRACE:    "{",
	RIGHTBRACE:   "}",
	LEFTREF:      "left",
	RIGHTREF:     "right",
}

// NewSymbol returns a structural token (brackets, braces, left, right).
func NewSymbol(kind Kind, pos int) Token {
	s, ok := symbols[kind]
	if !ok {
		panic(fmt.Sprintf("token: %v is not a structural kind", kind))
	}
	return Token{Kind: kind, Lexeme: s, Pos: pos}
}

// Append returns a new LIST made of t's elements followed by elem.
func (t Token) Append(elem Token) Token {
	elems := make([]Token, 0, len(t.Elems)+1)
	elems = append(elems, t.Elems...)
	return Token{Kind: LIST, Pos: -1, Elems: append(elems, elem)}
}

// IsOperand reports whether the token is a value that goes straight to the RPN
// output.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case NUMBER, STRING, VARIABLE, LIST, LEFTREF, RIGHTREF:
		return true
	}
	return false
}

// String returns the canonical textual form used by the RPN rendering.
func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return t.Number.Text('f')
	case STRING:
		return `"` + t.Lexeme + `"`
	case LIST:
		var b strings.Builder
		b.WriteString("[")
		for i, elem := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(elem.String())
		}
		b.WriteString("]")
		return b.String()
	}
	return t.Lexeme
}

// Pretty returns a debugging form including the kind and position.
func (t Token) Pretty() string {
	if t.Kind == OPERATOR {
		return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Pos, t.Fixity)
	}
	if t.Kind == LIST {
		return fmt.Sprintf("{%v, %q, %d}", t.Kind, t.String(), t.Pos)
	}
	return fmt.Sprintf("{%v, %q, %d}", t.Kind, t.Lexeme, t.Pos)
}
