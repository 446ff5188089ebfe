package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/suderio/handrit/operator"
	"github.com/suderio/handrit/token"
)

// Lex splits source into tokens. Custom operators declared with {...} are
// appended to table as they are found, so table must not be shared with a
// concurrent caller.
//
// Characters that start no token and no known operator are skipped. The only
// error is a malformed number literal.
func Lex(source string, table *operator.Table) ([]token.Token, error) {
	lexer := lexer{
		source: source,
		table:  table,
		tokens: []token.Token{},
	}

	for !lexer.isAtEnd() {
		if err := lexer.scanToken(); err != nil {
			return lexer.tokens, err
		}
	}

	return lexer.tokens, nil
}

type lexer struct {
	source string
	table  *operator.Table
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *lexer) add(t token.Token) {
	l.tokens = append(l.tokens, t)
}

// MalformedLiteralError reports a number literal that is not a valid decimal,
// such as "1.2.3".
type MalformedLiteralError struct {
	Text string
	Pos  int
}

func (e MalformedLiteralError) Error() string {
	return fmt.Sprintf("malformed literal %q at %d", e.Text, e.Pos)
}

func (l *lexer) scanToken() error {
	l.start = l.current
	char := l.advance()
	switch {
	case unicode.IsSpace(char):
		return nil
	case char == '"':
		l.string()
		return nil
	case char == '{':
		l.custom()
		return nil
	case isDigit(char) || char == '.':
		return l.number()
	case isAlpha(char):
		l.identifier()
		return nil
	}
	if k, ok := getReservedSymbol(char); ok {
		l.add(token.NewSymbol(k, l.start))
		return nil
	}
	l.current = l.start
	l.operator()
	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) number() error {
	for isDigit(l.peek()) || l.peek() == '.' {
		l.advance()
	}

	text := l.source[l.start:l.current]
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return MalformedLiteralError{Text: text, Pos: l.start}
	}
	l.add(token.NewNumber(d, l.start))

	return nil
}

// string scans up to the closing quote. A missing closing quote ends the
// literal at the end of input.
func (l *lexer) string() {
	for l.peek() != '"' && !l.isAtEnd() {
		l.advance()
	}
	value := l.source[l.start+1 : l.current]
	if !l.isAtEnd() {
		l.advance()
	}
	l.add(token.NewString(value, l.start))
}

// custom scans a {...} declaration, registers it and emits its operator token.
func (l *lexer) custom() {
	for l.peek() != '}' && !l.isAtEnd() {
		l.advance()
	}
	body := l.source[l.start+1 : l.current]
	if !l.isAtEnd() {
		l.advance()
	}
	op := l.table.AddCustom(body)
	l.add(op.Token(l.start))
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *lexer) identifier() {
	for !l.isAtEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	value := l.source[l.start:l.current]
	switch value {
	case "left":
		l.add(token.NewSymbol(token.LEFTREF, l.start))
	case "right":
		l.add(token.NewSymbol(token.RIGHTREF, l.start))
	default:
		l.add(token.NewVariable(value, l.start))
	}
}

func getReservedSymbol(char rune) (token.Kind, bool) {
	// These characters are reserved symbols, but they are not included in operator.
	reservedSymbols := map[rune]token.Kind{
		'(': token.LEFTPAREN,
		')': token.RIGHTPAREN,
		'[': token.LEFTBRACKET,
		']': token.RIGHTBRACKET,
		'}': token.RIGHTBRACE,
	}
	if k, ok := reservedSymbols[char]; ok {
		return k, true
	}

	return token.INVALID, false
}

func isSymbol(c rune) bool {
	if c == '{' {
		return false
	}
	_, isReserved := getReservedSymbol(c)

	return !isReserved && !unicode.IsSpace(c) && !unicode.IsLetter(c) && !unicode.IsDigit(c)
}

// expectsPrefix reports whether an operator at the current position has no
// left operand: at the start, after any operator and after (.
func (l *lexer) expectsPrefix() bool {
	if len(l.tokens) == 0 {
		return true
	}
	last := l.tokens[len(l.tokens)-1]

	return last.Kind == token.OPERATOR || last.Kind == token.LEFTPAREN
}

// operator scans a run of symbol characters and emits an operator of the
// expected fixity: prefix where there is no left operand, infix otherwise.
// Postfix operators are only tried after an operand when no infix operator
// matches. If nothing matches, one character is dropped.
func (l *lexer) operator() {
	for !l.isAtEnd() && isSymbol(l.peek()) {
		l.advance()
	}
	run := l.source[l.start:l.current]

	fixities := []token.Fixity{token.Infix, token.Postfix}
	if l.expectsPrefix() {
		fixities = []token.Fixity{token.Prefix}
	}

	// The run is matched by its longest known prefix rather than as a whole,
	// so "**-" reads as ** followed by a prefix -, not as one unknown symbol.
	for _, fixity := range fixities {
		if l.match(run, fixity) {
			return
		}
	}

	l.current = l.start
	l.advance()
}

// match emits the longest operator of the given fixity that run starts with.
func (l *lexer) match(run string, fixity token.Fixity) bool {
	for end := len(run); end > 0; end-- {
		if end < len(run) && !utf8.RuneStart(run[end]) {
			continue
		}
		if op, ok := l.table.Lookup(run[:end], fixity); ok {
			l.current = l.start + end
			l.add(op.Token(l.start))
			return true
		}
	}

	return false
}
