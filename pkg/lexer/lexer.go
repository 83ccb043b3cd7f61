package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/xplshn/bspl/pkg/token"
)

var (
	// ErrUnknownOperator is reported for a character that starts no token,
	// including a '<' or '>' that is not doubled.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrRadix is reported for an alphanumeric run that is neither a 32-bit
	// decimal or hexadecimal literal nor a keyword.
	ErrRadix = errors.New("invalid number literal")
)

// Error is a lexical error at a character offset of the input line.
type Error struct {
	Err error
	Col int
}

func (e *Error) Error() string {
	return strconv.Itoa(e.Col) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Pos returns the offset of the offending character.
func (e *Error) Pos() int { return e.Col }

// lexer is scratch state for a single call to Tokenize.
type lexer struct {
	source []rune
	pos    int
	tokens []token.Token
}

// Tokenize splits one line of input into tokens. Offsets are character
// (rune) indices into line. On error no tokens are returned.
func Tokenize(line string) ([]token.Token, error) {
	l := &lexer{source: []rune(line)}
	for {
		l.skipWhitespace()
		if l.isAtEnd() {
			return l.tokens, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) next() error {
	start := l.pos
	ch := l.peek()
	if isRadixRune(ch) {
		return l.radix(start)
	}

	l.advance()
	switch ch {
	case '(':
		l.emit(token.Open(start))
	case ')':
		l.emit(token.Close(start))
	case '^':
		l.emit(token.Op(token.Xor, start))
	case '&':
		l.emit(token.Op(token.And, start))
	case '|':
		l.emit(token.Op(token.Or, start))
	case '~':
		l.emit(token.Op(token.Not, start))
	case '<':
		return l.shift('<', token.LShift, start)
	case '>':
		return l.shift('>', token.RShift, start)
	default:
		return &Error{Err: ErrUnknownOperator, Col: start}
	}
	return nil
}

func (l *lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	return ch
}

func (l *lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *lexer) isAtEnd() bool { return l.pos >= len(l.source) }

func (l *lexer) emit(tok token.Token) { l.tokens = append(l.tokens, tok) }

func (l *lexer) skipWhitespace() {
	for !l.isAtEnd() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// shift finishes a shift operator whose first character has been consumed.
func (l *lexer) shift(ch rune, sym token.Symbol, start int) error {
	if !l.match(ch) {
		return &Error{Err: ErrUnknownOperator, Col: start}
	}
	l.emit(token.Op(sym, start))
	return nil
}

// radix collects a maximal alphanumeric run and classifies it.
func (l *lexer) radix(start int) error {
	for isRadixRune(l.peek()) {
		l.advance()
	}
	text := string(l.source[start:l.pos])
	kind, ok := classify(text)
	if !ok {
		return &Error{Err: ErrRadix, Col: start}
	}
	l.emit(token.Token{Kind: kind, Text: text, Pos: start})
	return nil
}

// classify decides which literal kind text is, in order: decimal,
// hexadecimal, keyword.
func classify(text string) (token.Kind, bool) {
	if _, err := strconv.ParseUint(text, 10, 32); err == nil {
		return token.Decimal, true
	}
	if digits, ok := strings.CutPrefix(text, "0x"); ok {
		if _, err := strconv.ParseUint(digits, 16, 32); err == nil {
			return token.Hexadecimal, true
		}
		return 0, false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return 0, false
		}
	}
	return token.Keyword, true
}

func isRadixRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
