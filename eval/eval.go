// Package eval executes RPN token sequences on a value stack.
package eval

import (
	"log/slog"

	"github.com/cockroachdb/apd/v3"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/token"
)

// DefaultPrecision is the number of significant digits kept by inexact
// operations such as division.
const DefaultPrecision = 34

// Env is the variable context of one evaluation.
type Env map[string]token.Token

// Evaluator evaluates RPN sequences using the behaviors of the operators in
// its table. It holds no per-evaluation state, but the table it refers to is
// not safe for concurrent use.
type Evaluator struct {
	table  *operator.Table
	ctx    *apd.Context
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPrecision sets the number of significant digits of computed numbers.
func WithPrecision(prec uint32) Option {
	return func(ev *Evaluator) {
		if prec > 0 {
			ev.ctx = apd.BaseContext.WithPrecision(prec)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(ev *Evaluator) {
		if logger != nil {
			ev.logger = logger
		}
	}
}

// NewEvaluator creates an Evaluator for table.
func NewEvaluator(table *operator.Table, opts ...Option) *Evaluator {
	ev := &Evaluator{
		table:  table,
		ctx:    apd.BaseContext.WithPrecision(DefaultPrecision),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Eval evaluates tokens in a fresh variable context and returns the single
// value left on the stack.
func (ev *Evaluator) Eval(tokens []token.Token) (token.Token, error) {
	return ev.EvalEnv(tokens, Env{})
}

// EvalEnv is like Eval but reads and writes variables in env.
func (ev *Evaluator) EvalEnv(tokens []token.Token, env Env) (token.Token, error) {
	m := &machine{Evaluator: ev, env: env}

	for _, tok := range tokens {
		switch {
		case tok.IsOperand():
			m.push(tok)
		case tok.Kind == token.OPERATOR:
			op, ok := ev.table.Lookup(tok.Lexeme, tok.Fixity)
			if !ok {
				return token.Token{}, &UnknownOperatorError{Symbol: tok.Lexeme, Fixity: tok.Fixity}
			}
			if err := behaviorOf(op).apply(m, op); err != nil {
				return token.Token{}, err
			}
		default:
			return token.Token{}, &GroupingError{Token: tok}
		}
	}

	switch len(m.stack) {
	case 0:
		return token.Token{}, &EmptyResultError{}
	case 1:
		return m.stack[0], nil
	default:
		return token.Token{}, &MalformedExpressionError{Count: len(m.stack)}
	}
}

// machine is the state of a single evaluation.
type machine struct {
	*Evaluator
	stack []token.Token
	env   Env
}

func (m *machine) push(t token.Token) {
	m.stack = append(m.stack, t)
}

// pop removes the top of the stack. op names the operator asking for it.
func (m *machine) pop(op string) (token.Token, error) {
	if len(m.stack) == 0 {
		return token.Token{}, &EmptyResultError{Op: op}
	}
	t := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return t, nil
}

// pop2 removes the two operands of an infix operator, left first.
func (m *machine) pop2(op string) (left, right token.Token, err error) {
	if right, err = m.pop(op); err != nil {
		return
	}
	left, err = m.pop(op)
	return
}
