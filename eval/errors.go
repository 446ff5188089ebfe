package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/handrit/token"
)

// UnknownOperatorError is an operator token with no operator of the same
// symbol and fixity in the table.
type UnknownOperatorError struct {
	Symbol string
	Fixity token.Fixity
}

func (err *UnknownOperatorError) Error() string {
	return "unknown " + err.Fixity.String() + " operator: " + err.Symbol
}

// UndefinedVariableError is a lookup of a name that has no value in the
// variable context.
type UndefinedVariableError struct {
	Name string
}

func (err *UndefinedVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// TypeMismatchError is an operator applied to operands it cannot use.
type TypeMismatchError struct {
	Op    string
	Kinds []token.Kind
}

func (err *TypeMismatchError) Error() string {
	kinds := make([]string, len(err.Kinds))
	for i, k := range err.Kinds {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("operator %s cannot be applied to %s", err.Op, strings.Join(kinds, ", "))
}

// EmptyResultError is a stack that ran out of values, either at the end of
// evaluation or while an operator was collecting its operands.
type EmptyResultError struct {
	// Op is the operator that was missing an operand, empty at the end of
	// evaluation.
	Op string
}

func (err *EmptyResultError) Error() string {
	if err.Op == "" {
		return "empty result"
	}
	return "missing operand for " + err.Op
}

// MalformedExpressionError is an evaluation that left more than one value on
// the stack.
type MalformedExpressionError struct {
	Count int
}

func (err *MalformedExpressionError) Error() string {
	return "malformed expression: " + strconv.Itoa(err.Count) + " values left on the stack"
}

// GroupingError is a structural token that reached the evaluator, which means
// an unmatched opening parenthesis or a bracket the grammar does not use.
type GroupingError struct {
	Token token.Token
}

func (err *GroupingError) Error() string {
	if err.Token.Kind == token.LEFTPAREN {
		return "unbalanced grouping: unmatched ( at " + strconv.Itoa(err.Token.Pos)
	}
	return "unexpected " + strconv.Quote(err.Token.String()) + " at " + strconv.Itoa(err.Token.Pos)
}

// ArithmeticError is a failed decimal operation, e.g. a division by zero.
type ArithmeticError struct {
	Op  string
	Err error
}

func (err *ArithmeticError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *ArithmeticError) Unwrap() error {
	return err.Err
}
