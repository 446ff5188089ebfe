package operator

import (
	"strings"
	"unicode"

	"github.com/suderio/handrit/token"
)

// Table is the ordered list of operators known while processing expressions.
// Standard operators come first; custom operators are only ever appended.
// A Table is not safe for concurrent use; give each goroutine its own Clone.
type Table struct {
	ops []Operator
}

// NewTable returns a table seeded with the standard operators.
func NewTable() *Table {
	return &Table{ops: Standard()}
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	return &Table{ops: append([]Operator(nil), t.ops...)}
}

// Operators returns a copy of the operators in table order.
func (t *Table) Operators() []Operator {
	return append([]Operator(nil), t.ops...)
}

func (t *Table) Len() int {
	return len(t.ops)
}

// Lookup finds the first operator with the given symbol and fixity.
func (t *Table) Lookup(symbol string, fixity token.Fixity) (Operator, bool) {
	for _, op := range t.ops {
		if op.Symbol == symbol && op.Fixity == fixity {
			return op, true
		}
	}
	return Operator{}, false
}

// LookupSymbol finds the first operator with the given symbol regardless of
// fixity. Callers must already know which fixity they are dealing with.
func (t *Table) LookupSymbol(symbol string) (Operator, bool) {
	for _, op := range t.ops {
		if op.Symbol == symbol {
			return op, true
		}
	}
	return Operator{}, false
}

// Precedence returns the precedence of (symbol, fixity), or 0 if unknown.
func (t *Table) Precedence(symbol string, fixity token.Fixity) int {
	if op, ok := t.Lookup(symbol, fixity); ok {
		return op.Precedence
	}
	return 0
}

// Assoc returns the associativity of (symbol, fixity), Left if unknown.
func (t *Table) Assoc(symbol string, fixity token.Fixity) Assoc {
	if op, ok := t.Lookup(symbol, fixity); ok {
		return op.Assoc
	}
	return Left
}

// AddCustom registers the operator declared by the brace text body and returns
// it. Declaring the same text twice yields the operator registered first.
func (t *Table) AddCustom(body string) Operator {
	op := Operator{
		Symbol:     "{" + body + "}",
		Precedence: CustomPrecedence,
		Assoc:      Left,
		Fixity:     Classify(body),
		Kind:       Custom,
		Body:       body,
	}
	if existing, ok := t.Lookup(op.Symbol, op.Fixity); ok {
		return existing
	}
	t.ops = append(t.ops, op)
	return op
}

// Classify decides the fixity of a custom operator from its body: a body naming
// both left and right is infix, one containing " right " is prefix, and
// anything else is postfix.
func Classify(body string) token.Fixity {
	words := identifiers(body)
	if words["left"] && words["right"] {
		return token.Infix
	}
	if strings.Contains(body, " right ") {
		return token.Prefix
	}
	return token.Postfix
}

func identifiers(s string) map[string]bool {
	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return !isWord(r) }) {
		words[w] = true
	}
	return words
}
