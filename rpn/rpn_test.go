package rpn_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suderio/handrit/lexer"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/rpn"
)

func convert(t *testing.T, input string) string {
	t.Helper()
	table := operator.NewTable()
	tokens, err := lexer.Lex(input, table)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", input, err)
	}
	return rpn.Render(rpn.Convert(tokens, table))
}

func TestConvert(t *testing.T) {
	testcases := []struct {
		input    string
		expected string
	}{
		{"1", "1"},
		{"1 + 2", "1 2 +"},
		{"1 - 2 - 3", "1 2 - 3 -"},
		{"1 * 2 + 3", "1 2 * 3 +"},
		{"1 + 2 * 3", "1 2 3 * +"},
		{"(1 + 2) * 3", "1 2 + 3 *"},
		{"((1))", "1"},
		{"2 ** 3 ** 2", "2 3 2 ** **"},
		{"a: b: 1", "a b 1 : :"},
		{"1 < 2 && 2 < 3", "1 2 < 2 3 < &&"},
		{"1, 2, 3", "1 2 , 3 ,"},
		{"--1", "1 - -"},
		{"-x * 2", "x 2 * -"},
		{"-2 ** 2", "2 2 ** -"},
		{"-1 + 2", "1 - 2 +"},
		{"~2 ** 2", "2 ~ 2 **"},
		{"x ? + 2", "x ? 2 +"},
		{"x ? * 2", "x ? 2"},
		{`"a" + "b"`, `"a" "b" +`},
		{"1 + 2)", "1 2 +"},
		{"(1 + 2", "1 2 + ("},
		{"[1]", "[ 1 ]"},
		{"1 {left % right} 2 * 3", "1 2 {left % right} 3 *"},
		{"1 * 2 {left % right} 3", "1 2 3 {left % right} *"},
	}
	for _, testcase := range testcases {
		if diff := cmp.Diff(testcase.expected, convert(t, testcase.input)); diff != "" {
			t.Errorf("Convert(%q) mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

// Converting a stream that is already in RPN order and has no precedence
// conflicts leaves it as it is.
func TestConvertIdempotent(t *testing.T) {
	for _, input := range []string{"1 + 2", "1 + 2 * 3", "2 ** 3 ** 2", "a: b: 1", "1, 2", "x ?"} {
		table := operator.NewTable()
		tokens, err := lexer.Lex(input, table)
		if err != nil {
			t.Fatal(err)
		}
		once := rpn.Convert(tokens, table)
		twice := rpn.Convert(once, table)
		if diff := cmp.Diff(rpn.Render(once), rpn.Render(twice)); diff != "" {
			t.Errorf("Convert is not idempotent on %q (-once +twice):\n%s", input, diff)
		}
	}
}

func TestConvertKeepsOperands(t *testing.T) {
	table := operator.NewTable()
	tokens, err := lexer.Lex("a * (b + c) - d / e", table)
	if err != nil {
		t.Fatal(err)
	}
	var operands []string
	for _, tok := range rpn.Convert(tokens, table) {
		if tok.IsOperand() {
			operands = append(operands, tok.String())
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, operands); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
