package eval

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/token"
)

// behavior is what an operator does to the stack and the variable context.
type behavior interface {
	apply(m *machine, op operator.Operator) error
}

var behaviors = map[operator.Kind]behavior{
	operator.Assign:       assign{},
	operator.Or:           logical(func(a, b bool) bool { return a || b }),
	operator.And:          logical(func(a, b bool) bool { return a && b }),
	operator.BitOr:        logical(func(a, b bool) bool { return a || b }),
	operator.Xor:          logical(func(a, b bool) bool { return a != b }),
	operator.BitAnd:       logical(func(a, b bool) bool { return a && b }),
	operator.Equal:        comparison(func(c int) bool { return c == 0 }),
	operator.NotEqual:     comparison(func(c int) bool { return c != 0 }),
	operator.Greater:      comparison(func(c int) bool { return c > 0 }),
	operator.Less:         comparison(func(c int) bool { return c < 0 }),
	operator.GreaterEqual: comparison(func(c int) bool { return c >= 0 }),
	operator.LessEqual:    comparison(func(c int) bool { return c <= 0 }),
	operator.Add:          arithmetic((*apd.Context).Add),
	operator.Sub:          arithmetic((*apd.Context).Sub),
	operator.Mul:          arithmetic((*apd.Context).Mul),
	operator.Div:          arithmetic((*apd.Context).Quo),
	operator.Mod:          arithmetic((*apd.Context).Rem),
	operator.Pow:          power{},
	operator.Negate:       unary(func(d, x *apd.Decimal) { d.Neg(x) }),
	operator.Identity:     unary(func(d, x *apd.Decimal) { d.Set(x) }),
	operator.Cons:         cons{},
	operator.Debug:        inert{},
	operator.Complement:   inert{},
	operator.Exists:       inert{},
	operator.Sequence:     inert{},
	operator.Member:       inert{},
	operator.Custom:       custom{},
}

func behaviorOf(op operator.Operator) behavior {
	if b, ok := behaviors[op.Kind]; ok {
		return b
	}
	return inert{}
}

// arithmetic is an infix operator computed by an apd.Context method.
type arithmetic func(c *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

func (f arithmetic) apply(m *machine, op operator.Operator) error {
	x, y, err := m.numbers(op.Symbol)
	if err != nil {
		return err
	}
	d := new(apd.Decimal)
	if _, err := f(m.ctx, d, x, y); err != nil {
		return &ArithmeticError{Op: op.Symbol, Err: err}
	}
	m.push(token.NewNumber(d, -1))
	return nil
}

var errFractionalExponent = errors.New("exponent must be an integer")

// power raises to integer exponents. Negative exponents give reciprocals;
// fractional ones are rejected.
type power struct{}

func (power) apply(m *machine, op operator.Operator) error {
	x, y, err := m.numbers(op.Symbol)
	if err != nil {
		return err
	}
	integral := new(apd.Decimal)
	if _, err := m.ctx.RoundToIntegralValue(integral, y); err != nil {
		return &ArithmeticError{Op: op.Symbol, Err: err}
	}
	if integral.Cmp(y) != 0 {
		return &ArithmeticError{Op: op.Symbol, Err: errFractionalExponent}
	}
	if y.IsZero() {
		m.push(token.NewNumber(one, -1))
		return nil
	}
	d := new(apd.Decimal)
	if _, err := m.ctx.Pow(d, x, integral); err != nil {
		return &ArithmeticError{Op: op.Symbol, Err: err}
	}
	if integral.Negative {
		// Reciprocals come back padded to full precision.
		d.Reduce(d)
	}
	m.push(token.NewNumber(d, -1))
	return nil
}

// comparison compares two numbers and pushes 1 or 0.
type comparison func(c int) bool

func (f comparison) apply(m *machine, op operator.Operator) error {
	x, y, err := m.numbers(op.Symbol)
	if err != nil {
		return err
	}
	m.push(boolean(f(x.Cmp(y))))
	return nil
}

// logical combines the truth values of two numbers and pushes 1 or 0.
type logical func(a, b bool) bool

func (f logical) apply(m *machine, op operator.Operator) error {
	x, y, err := m.numbers(op.Symbol)
	if err != nil {
		return err
	}
	m.push(boolean(f(truthy(x), truthy(y))))
	return nil
}

// unary is a prefix operator on one number.
type unary func(d, x *apd.Decimal)

func (f unary) apply(m *machine, op operator.Operator) error {
	t, err := m.pop(op.Symbol)
	if err != nil {
		return err
	}
	x, err := m.number(op.Symbol, t)
	if err != nil {
		return err
	}
	d := new(apd.Decimal)
	f(d, x)
	m.push(token.NewNumber(d, -1))
	return nil
}

// assign stores the right operand under the variable on the left and pushes
// the stored value.
type assign struct{}

func (assign) apply(m *machine, op operator.Operator) error {
	left, right, err := m.pop2(op.Symbol)
	if err != nil {
		return err
	}
	if left.Kind != token.VARIABLE {
		return &TypeMismatchError{Op: op.Symbol, Kinds: []token.Kind{left.Kind, right.Kind}}
	}
	value, err := m.resolve(right)
	if err != nil {
		return err
	}
	m.env[left.Lexeme] = value
	m.push(value)
	return nil
}

// cons builds lists: a list on the left grows by the right operand, anything
// else starts a new two element list.
type cons struct{}

func (cons) apply(m *machine, op operator.Operator) error {
	left, right, err := m.pop2(op.Symbol)
	if err != nil {
		return err
	}
	if left.Kind == token.LIST {
		m.push(left.Append(right))
	} else {
		m.push(token.NewList([]token.Token{left, right}))
	}
	return nil
}

// inert operators are reserved symbols with no effect on the stack.
type inert struct{}

func (inert) apply(m *machine, op operator.Operator) error {
	m.logger.Debug("inert operator", "symbol", op.Symbol, "fixity", op.Fixity.String())
	return nil
}

// custom binds the operands of a user declared operator to left and right for
// the duration of the call and yields "undefined".
type custom struct{}

func (custom) apply(m *machine, op operator.Operator) error {
	var bound []string
	switch op.Fixity {
	case token.Infix:
		left, right, err := m.pop2(op.Symbol)
		if err != nil {
			return err
		}
		m.env["left"], m.env["right"] = left, right
		bound = []string{"left", "right"}
	case token.Prefix:
		right, err := m.pop(op.Symbol)
		if err != nil {
			return err
		}
		m.env["right"] = right
		bound = []string{"right"}
	case token.Postfix:
		left, err := m.pop(op.Symbol)
		if err != nil {
			return err
		}
		m.env["left"] = left
		bound = []string{"left"}
	}
	m.logger.Debug("custom operator", "symbol", op.Symbol, "body", op.Body, "bound", bound)
	m.push(token.NewString("undefined", -1))
	for _, name := range bound {
		delete(m.env, name)
	}
	return nil
}
