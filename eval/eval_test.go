package eval_test

import (
	"errors"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/suderio/handrit/eval"
	"github.com/suderio/handrit/lexer"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/rpn"
	"github.com/suderio/handrit/token"
)

func evaluate(t *testing.T, input string, env eval.Env) (token.Token, error) {
	t.Helper()
	table := operator.NewTable()
	tokens, err := lexer.Lex(input, table)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", input, err)
	}
	return eval.NewEvaluator(table).EvalEnv(rpn.Convert(tokens, table), env)
}

func decimal(t *testing.T, s string) *apd.Decimal {
	t.Helper()
	d, _, err := apd.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNumbers(t *testing.T) {
	testcases := []struct {
		input    string
		expected string
	}{
		{"2 ** -2", "0.25"},
		{"2 ** 0", "1"},
		{"0 ** 0", "1"},
		{"7 % 3", "1"},
		{"3 || 0", "1"},
		{"0 && 0", "0"},
		{"1 | 0", "1"},
		{"1 ^ 1", "0"},
		{"1 & 2", "1"},
		{"2 = 2.0", "1"},
		{"2 <> 3", "1"},
		{"3 >= 3", "1"},
		{"3 < 2", "0"},
		{`"héllo" + 0`, "5"},
		{"(1, 2, 3) * 2", "6"},
		{"--3", "3"},
		{"+-3", "-3"},
	}
	for _, testcase := range testcases {
		result, err := evaluate(t, testcase.input, eval.Env{})
		if err != nil {
			t.Errorf("%q returned error: %v", testcase.input, err)
			continue
		}
		if result.Kind != token.NUMBER {
			t.Errorf("%q = %s, expected a number", testcase.input, result.Pretty())
			continue
		}
		if result.Number.Cmp(decimal(t, testcase.expected)) != 0 {
			t.Errorf("%q = %s, expected %s", testcase.input, result, testcase.expected)
		}
	}
}

func TestNegativeExponentIsReduced(t *testing.T) {
	testcases := []struct {
		input    string
		expected string
	}{
		{"2 ** -1", "0.5"},
		{"2 ** -2", "0.25"},
		{"10 ** -3", "0.001"},
	}
	for _, testcase := range testcases {
		result, err := evaluate(t, testcase.input, eval.Env{})
		if err != nil {
			t.Errorf("%q returned error: %v", testcase.input, err)
			continue
		}
		if diff := cmp.Diff(testcase.expected, result.String()); diff != "" {
			t.Errorf("%q mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

func TestAssignmentUpdatesEnv(t *testing.T) {
	env := eval.Env{}
	if _, err := evaluate(t, "x: 2 + 3", env); err != nil {
		t.Fatal(err)
	}
	if _, err := evaluate(t, "y: x", env); err != nil {
		t.Fatal(err)
	}
	result, err := evaluate(t, "x * y", env)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("25", result.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// Assignment stores values, never references.
	if env["y"].Kind != token.NUMBER {
		t.Errorf("y holds %s", env["y"].Pretty())
	}
}

func TestCustomOperatorUnbinds(t *testing.T) {
	env := eval.Env{}
	result, err := evaluate(t, "1 {left + right} 2", env)
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != token.STRING || result.Lexeme != "undefined" {
		t.Errorf("result = %s", result.Pretty())
	}
	if _, ok := env["left"]; ok {
		t.Error("left is still bound")
	}
	if _, ok := env["right"]; ok {
		t.Error("right is still bound")
	}
}

func TestErrors(t *testing.T) {
	var (
		undefined *eval.UndefinedVariableError
		mismatch  *eval.TypeMismatchError
		empty     *eval.EmptyResultError
		malformed *eval.MalformedExpressionError
		grouping  *eval.GroupingError
		arith     *eval.ArithmeticError
	)
	testcases := []struct {
		input  string
		target any
	}{
		{"1 + undefinedVar", &undefined},
		{"left * 2", &undefined},
		{"1: 2", &mismatch},
		{"", &empty},
		{"-", &empty},
		{"1 2 3", &malformed},
		{"(1", &grouping},
		{"[1]", &grouping},
		{"1 / 0", &arith},
		{"4 ** 0.5", &arith},
	}
	for _, testcase := range testcases {
		_, err := evaluate(t, testcase.input, eval.Env{})
		if err == nil {
			t.Errorf("%q succeeded", testcase.input)
			continue
		}
		if !errors.As(err, testcase.target) {
			t.Errorf("%q returned %T: %v", testcase.input, err, err)
		}
	}

	_, err := evaluate(t, "1 / 0", eval.Env{})
	if !errors.As(err, &arith) || !errors.Is(err, arith.Err) {
		t.Errorf("ArithmeticError does not unwrap: %v", err)
	}
}

func TestUnknownOperator(t *testing.T) {
	table := operator.NewTable()
	tokens := []token.Token{
		token.NewNumber(apd.New(1, 0), 0),
		token.NewOperator("@", token.Postfix, 1),
	}
	_, err := eval.NewEvaluator(table).Eval(tokens)
	var unknown *eval.UnknownOperatorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownOperatorError, got %v", err)
	}
	if diff := cmp.Diff("unknown postfix operator: @", err.Error()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPrecision(t *testing.T) {
	table := operator.NewTable()
	tokens, err := lexer.Lex("2 / 3", table)
	if err != nil {
		t.Fatal(err)
	}
	out := rpn.Convert(tokens, table)

	result, err := eval.NewEvaluator(table, eval.WithPrecision(3)).Eval(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(result.Number.Coeff.String()); got != 3 {
		t.Errorf("2 / 3 = %s has %d digits, expected 3", result, got)
	}
}
