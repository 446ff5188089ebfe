// Package operator describes the operators an expression may use and keeps the
// ordered table the lexer, converter and evaluator consult.
package operator

import (
	"fmt"

	"github.com/suderio/handrit/token"
)

type Assoc int

const (
	Left Assoc = iota
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// Kind selects the evaluation behavior of an operator.
type Kind int

const (
	Assign Kind = iota
	Or
	And
	BitOr
	Xor
	BitAnd
	Equal
	NotEqual
	Greater
	Less
	GreaterEqual
	LessEqual
	Add
	Sub
	Debug
	Mul
	Div
	Mod
	Pow
	Negate
	Identity
	Complement
	Exists
	Cons
	Sequence
	Member
	Custom
)

var kindNames = [...]string{
	Assign:       "assign",
	Or:           "or",
	And:          "and",
	BitOr:        "bitor",
	Xor:          "xor",
	BitAnd:       "bitand",
	Equal:        "equal",
	NotEqual:     "notequal",
	Greater:      "greater",
	Less:         "less",
	GreaterEqual: "greaterequal",
	LessEqual:    "lessequal",
	Add:          "add",
	Sub:          "sub",
	Debug:        "debug",
	Mul:          "mul",
	Div:          "div",
	Mod:          "mod",
	Pow:          "pow",
	Negate:       "negate",
	Identity:     "identity",
	Complement:   "complement",
	Exists:       "exists",
	Cons:         "cons",
	Sequence:     "sequence",
	Member:       "member",
	Custom:       "custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Operator is a descriptor. Operators are identified by the pair (Symbol,
// Fixity); the same symbol may appear once per fixity.
type Operator struct {
	Symbol     string
	Precedence int
	Assoc      Assoc
	Fixity     token.Fixity
	Kind       Kind
	// Body is the text between the braces of a custom operator.
	Body string
}

func (o Operator) String() string {
	return fmt.Sprintf("%s %s %d %s (%s)", o.Fixity, o.Symbol, o.Precedence, o.Assoc, o.Kind)
}

// Token returns an operator token for o at pos.
func (o Operator) Token(pos int) token.Token {
	return token.NewOperator(o.Symbol, o.Fixity, pos)
}

func infix(symbol string, prec int, assoc Assoc, kind Kind) Operator {
	return Operator{Symbol: symbol, Precedence: prec, Assoc: assoc, Fixity: token.Infix, Kind: kind}
}

// Standard returns the built-in operators in table order.
func Standard() []Operator {
	return []Operator{
		infix(":", 1, Right, Assign),
		infix("||", 3, Left, Or),
		infix("&&", 4, Left, And),
		infix("|", 5, Left, BitOr),
		infix("^", 6, Left, Xor),
		infix("&", 7, Left, BitAnd),
		infix("=", 8, Left, Equal),
		infix("<>", 8, Left, NotEqual),
		infix(">", 9, Left, Greater),
		infix("<", 9, Left, Less),
		infix(">=", 9, Left, GreaterEqual),
		infix("<=", 9, Left, LessEqual),
		infix("+", 11, Left, Add),
		infix("-", 11, Left, Sub),
		infix("$", 11, Left, Debug),
		infix("*", 12, Left, Mul),
		infix("/", 12, Left, Div),
		infix("%", 12, Left, Mod),
		infix("**", 13, Right, Pow),
		{Symbol: "-", Precedence: 14, Assoc: Right, Fixity: token.Prefix, Kind: Negate},
		{Symbol: "+", Precedence: 14, Assoc: Right, Fixity: token.Prefix, Kind: Identity},
		{Symbol: "~", Precedence: 14, Assoc: Right, Fixity: token.Prefix, Kind: Complement},
		{Symbol: "?", Precedence: 16, Assoc: Left, Fixity: token.Postfix, Kind: Exists},
		infix(",", 16, Left, Cons),
		infix(";", 16, Left, Sequence),
		infix(".", 16, Left, Member),
	}
}

// CustomPrecedence binds custom operators tighter than every standard one.
const CustomPrecedence = 20
