// Package rpn reorders infix token sequences into reverse polish notation with
// the shunting-yard algorithm.
package rpn

import (
	"strings"

	"github.com/edwingeng/deque"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/token"
)

// Convert returns tokens in RPN order. Operands keep their relative order;
// operators are placed after their operands according to the precedence and
// associativity recorded in table.
//
// Convert never fails. A closing parenthesis without a match is dropped and an
// opening one without a match is left in the output for the evaluator to
// report.
func Convert(tokens []token.Token, table *operator.Table) []token.Token {
	output := make([]token.Token, 0, len(tokens))
	stack := deque.NewDeque()

	for _, tok := range tokens {
		switch {
		case tok.Kind == token.OPERATOR:
			switch tok.Fixity {
			case token.Prefix:
				stack.PushBack(tok)
			case token.Postfix:
				output = append(output, tok)
			case token.Infix:
				for !stack.Empty() {
					top := stack.Back().(token.Token)
					if top.Kind != token.OPERATOR || !yields(table, top, tok) {
						break
					}
					output = append(output, stack.PopBack().(token.Token))
				}
				stack.PushBack(tok)
			}
		case tok.Kind == token.LEFTPAREN:
			stack.PushBack(tok)
		case tok.Kind == token.RIGHTPAREN:
			for !stack.Empty() {
				top := stack.PopBack().(token.Token)
				if top.Kind == token.LEFTPAREN {
					break
				}
				output = append(output, top)
			}
		default:
			// Operands and the reserved bracket/brace markers.
			output = append(output, tok)
		}
	}

	for !stack.Empty() {
		output = append(output, stack.PopBack().(token.Token))
	}

	return output
}

// yields reports whether the operator on top of the stack must be emitted
// before cur is pushed. The decision uses the stacked operator's own
// associativity. The stacked operator is found by symbol alone, so a stacked
// prefix - compares as the infix - of precedence 11: -2 ** 2 is -(2 ** 2).
func yields(table *operator.Table, top, cur token.Token) bool {
	topOp, ok := table.LookupSymbol(top.Lexeme)
	if !ok {
		return false
	}
	prec := table.Precedence(cur.Lexeme, cur.Fixity)
	if topOp.Assoc == operator.Left {
		return topOp.Precedence >= prec
	}
	return topOp.Precedence > prec
}

// Render joins the canonical forms of tokens with single spaces.
func Render(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
