package driver

import (
	"fmt"
	"log/slog"

	"github.com/suderio/handrit/eval"
	"github.com/suderio/handrit/lexer"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/rpn"
	"github.com/suderio/handrit/token"
)

// Machine runs expressions through the lexer, the RPN converter and the
// evaluator. It is not safe for concurrent use.
type Machine struct {
	table     *operator.Table
	reuse     bool
	precision uint32
	logger    *slog.Logger
}

type Option func(*Machine)

// WithReuse makes custom operators declared by one call visible to the next.
// Without it every call starts from the standard table.
func WithReuse(reuse bool) Option {
	return func(m *Machine) {
		m.reuse = reuse
	}
}

func WithPrecision(prec uint32) Option {
	return func(m *Machine) {
		m.precision = prec
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		table:     operator.NewTable(),
		precision: eval.DefaultPrecision,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Table returns the operator table the next call starts from.
func (m *Machine) Table() *operator.Table {
	return m.table
}

// session returns the table one call works on.
func (m *Machine) session() *operator.Table {
	if m.reuse {
		return m.table
	}
	return m.table.Clone()
}

func (m *Machine) convert(source string, table *operator.Table) ([]token.Token, error) {
	tokens, err := lexer.Lex(source, table)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	m.logger.Debug("lexed", "source", source, "tokens", len(tokens), "operators", table.Len())

	out := rpn.Convert(tokens, table)
	m.logger.Debug("converted", "rpn", rpn.Render(out))

	return out, nil
}

// ToRPN returns the space separated RPN form of source.
func (m *Machine) ToRPN(source string) (string, error) {
	out, err := m.convert(source, m.session())
	if err != nil {
		return "", err
	}
	return rpn.Render(out), nil
}

// Run evaluates source and returns its value.
func (m *Machine) Run(source string) (token.Token, error) {
	table := m.session()
	out, err := m.convert(source, table)
	if err != nil {
		return token.Token{}, err
	}

	ev := eval.NewEvaluator(table, eval.WithPrecision(m.precision), eval.WithLogger(m.logger))
	result, err := ev.Eval(out)
	if err != nil {
		return token.Token{}, fmt.Errorf("eval: %w", err)
	}
	m.logger.Debug("evaluated", "result", result.String())

	return result, nil
}
