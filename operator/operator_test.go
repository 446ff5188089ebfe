package operator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/token"
)

func TestStandardOrder(t *testing.T) {
	var symbols []string
	for _, op := range operator.NewTable().Operators() {
		symbols = append(symbols, op.Symbol)
	}
	expected := []string{
		":", "||", "&&", "|", "^", "&", "=", "<>", ">", "<", ">=", "<=",
		"+", "-", "$", "*", "/", "%", "**", "-", "+", "~", "?", ",", ";", ".",
	}
	if diff := cmp.Diff(expected, symbols); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupByFixity(t *testing.T) {
	table := operator.NewTable()

	testcases := []struct {
		symbol string
		fixity token.Fixity
		prec   int
		assoc  operator.Assoc
		kind   operator.Kind
	}{
		{"-", token.Infix, 11, operator.Left, operator.Sub},
		{"-", token.Prefix, 14, operator.Right, operator.Negate},
		{"+", token.Prefix, 14, operator.Right, operator.Identity},
		{"**", token.Infix, 13, operator.Right, operator.Pow},
		{":", token.Infix, 1, operator.Right, operator.Assign},
		{"?", token.Postfix, 16, operator.Left, operator.Exists},
	}
	for _, testcase := range testcases {
		op, ok := table.Lookup(testcase.symbol, testcase.fixity)
		if !ok {
			t.Errorf("%s %s not found", testcase.fixity, testcase.symbol)
			continue
		}
		if op.Precedence != testcase.prec || op.Assoc != testcase.assoc || op.Kind != testcase.kind {
			t.Errorf("Lookup(%q, %s) = %v", testcase.symbol, testcase.fixity, op)
		}
		if got := table.Precedence(testcase.symbol, testcase.fixity); got != testcase.prec {
			t.Errorf("Precedence(%q, %s) = %d", testcase.symbol, testcase.fixity, got)
		}
		if got := table.Assoc(testcase.symbol, testcase.fixity); got != testcase.assoc {
			t.Errorf("Assoc(%q, %s) = %s", testcase.symbol, testcase.fixity, got)
		}
	}

	if _, ok := table.Lookup("*", token.Prefix); ok {
		t.Error("found a prefix *")
	}
	if got := table.Precedence("@", token.Infix); got != 0 {
		t.Errorf("Precedence of an unknown operator = %d", got)
	}
	if got := table.Assoc("@", token.Infix); got != operator.Left {
		t.Errorf("Assoc of an unknown operator = %s", got)
	}

	op, ok := table.LookupSymbol("-")
	if !ok || op.Fixity != token.Infix {
		t.Errorf("LookupSymbol(\"-\") = %v, %v", op, ok)
	}
}

func TestClassify(t *testing.T) {
	testcases := []struct {
		body     string
		expected token.Fixity
	}{
		{"left + right", token.Infix},
		{"right - left", token.Infix},
		{" right ", token.Prefix},
		{"x right y", token.Prefix},
		{"left!", token.Postfix},
		{"", token.Postfix},
		{"right", token.Postfix},
		{"leftover righteous", token.Postfix},
	}
	for _, testcase := range testcases {
		if got := operator.Classify(testcase.body); got != testcase.expected {
			t.Errorf("Classify(%q) = %s, expected %s", testcase.body, got, testcase.expected)
		}
	}
}

func TestAddCustom(t *testing.T) {
	table := operator.NewTable()
	n := table.Len()

	op := table.AddCustom("left + right")
	expected := operator.Operator{
		Symbol:     "{left + right}",
		Precedence: operator.CustomPrecedence,
		Assoc:      operator.Left,
		Fixity:     token.Infix,
		Kind:       operator.Custom,
		Body:       "left + right",
	}
	if diff := cmp.Diff(expected, op); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if table.Len() != n+1 {
		t.Errorf("Len() = %d, expected %d", table.Len(), n+1)
	}

	again := table.AddCustom("left + right")
	if diff := cmp.Diff(op, again); diff != "" {
		t.Errorf("redeclaration mismatch (-want +got):\n%s", diff)
	}
	if table.Len() != n+1 {
		t.Errorf("redeclaration grew the table to %d", table.Len())
	}

	ops := table.Operators()
	if last := ops[len(ops)-1]; last.Symbol != "{left + right}" {
		t.Errorf("custom operator is not last: %v", last)
	}
}

func TestClone(t *testing.T) {
	table := operator.NewTable()
	clone := table.Clone()
	clone.AddCustom(" right ")

	if _, ok := table.Lookup("{ right }", token.Prefix); ok {
		t.Error("custom operator leaked into the cloned-from table")
	}
	if _, ok := clone.Lookup("{ right }", token.Prefix); !ok {
		t.Error("custom operator missing from the clone")
	}
}

func TestOperatorString(t *testing.T) {
	op, _ := operator.NewTable().Lookup("**", token.Infix)
	if diff := cmp.Diff("infix ** 13 right (pow)", op.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
