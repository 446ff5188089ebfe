package eval

import (
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/suderio/handrit/token"
)

var (
	zero = apd.New(0, 0)
	one  = apd.New(1, 0)
)

// resolve replaces a variable reference by its value in the context. Other
// tokens are returned unchanged. Only one level is resolved.
func (m *machine) resolve(t token.Token) (token.Token, error) {
	switch t.Kind {
	case token.VARIABLE, token.LEFTREF, token.RIGHTREF:
		v, ok := m.env[t.Lexeme]
		if !ok {
			return token.Token{}, &UndefinedVariableError{Name: t.Lexeme}
		}
		return v, nil
	}
	return t, nil
}

// numeric is the number a resolved value stands for: numbers are themselves,
// strings count their characters and lists their elements.
func numeric(t token.Token) (*apd.Decimal, bool) {
	switch t.Kind {
	case token.NUMBER:
		return t.Number, true
	case token.STRING:
		return apd.New(int64(utf8.RuneCountInString(t.Lexeme)), 0), true
	case token.LIST:
		return apd.New(int64(len(t.Elems)), 0), true
	}
	return nil, false
}

// number resolves and coerces the operand of a unary operator.
func (m *machine) number(op string, t token.Token) (*apd.Decimal, error) {
	v, err := m.resolve(t)
	if err != nil {
		return nil, err
	}
	d, ok := numeric(v)
	if !ok {
		return nil, &TypeMismatchError{Op: op, Kinds: []token.Kind{v.Kind}}
	}
	return d, nil
}

// numbers pops, resolves and coerces both operands of an infix operator.
func (m *machine) numbers(op string) (x, y *apd.Decimal, err error) {
	left, right, err := m.pop2(op)
	if err != nil {
		return nil, nil, err
	}
	if left, err = m.resolve(left); err != nil {
		return nil, nil, err
	}
	if right, err = m.resolve(right); err != nil {
		return nil, nil, err
	}
	x, okx := numeric(left)
	y, oky := numeric(right)
	if !okx || !oky {
		return nil, nil, &TypeMismatchError{Op: op, Kinds: []token.Kind{left.Kind, right.Kind}}
	}
	return x, y, nil
}

func boolean(b bool) token.Token {
	if b {
		return token.NewNumber(one, -1)
	}
	return token.NewNumber(zero, -1)
}

func truthy(d *apd.Decimal) bool {
	return !d.IsZero()
}
