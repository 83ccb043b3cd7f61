package parser

import (
	"errors"
	"strconv"

	"github.com/xplshn/bspl/pkg/token"
)

var (
	ErrMissingOpeningBracket = errors.New("close bracket with no open bracket")
	ErrMissingClosingBracket = errors.New("open bracket with no close bracket")
	// ErrKeyword is reported for a keyword that is not the only token on the
	// line.
	ErrKeyword = errors.New("keyword must stand alone")
)

// Error is a structural error at a character offset of the input line.
type Error struct {
	Err error
	Col int
}

func (e *Error) Error() string {
	return strconv.Itoa(e.Col) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Pos returns the offset of the offending token.
func (e *Error) Pos() int { return e.Col }

// parser holds the operator stack and output for a single call to Parse.
type parser struct {
	stack  []token.Token
	output []token.Token
}

// Parse reorders an infix token sequence into postfix order using the
// shunting-yard algorithm. Brackets do not appear in the result.
func Parse(tokens []token.Token) ([]token.Token, error) {
	p := &parser{
		stack:  make([]token.Token, 0, len(tokens)),
		output: make([]token.Token, 0, len(tokens)),
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Decimal, token.Hexadecimal:
			p.emit(tok)
		case token.Keyword:
			if len(tokens) != 1 {
				return nil, &Error{Err: ErrKeyword, Col: tok.Pos}
			}
			p.emit(tok)
		case token.Operator:
			p.operator(tok)
		case token.OpenBracket:
			p.push(tok)
		case token.CloseBracket:
			if !p.closeBracket() {
				return nil, &Error{Err: ErrMissingOpeningBracket, Col: tok.Pos}
			}
		}
	}
	for len(p.stack) > 0 {
		tok := p.pop()
		if tok.Kind == token.OpenBracket {
			return nil, &Error{Err: ErrMissingClosingBracket, Col: tok.Pos}
		}
		p.emit(tok)
	}
	return p.output, nil
}

func (p *parser) emit(tok token.Token) { p.output = append(p.output, tok) }

func (p *parser) push(tok token.Token) { p.stack = append(p.stack, tok) }

func (p *parser) pop() token.Token {
	tok := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return tok
}

func (p *parser) top() (token.Token, bool) {
	if len(p.stack) == 0 {
		return token.Token{}, false
	}
	return p.stack[len(p.stack)-1], true
}

// operator moves every stacked operator that yields to tok to the output,
// then stacks tok.
func (p *parser) operator(tok token.Token) {
	in := Lookup(tok.Symbol)
	for {
		top, ok := p.top()
		if !ok || top.Kind != token.Operator || !yields(Lookup(top.Symbol), in) {
			break
		}
		p.emit(p.pop())
	}
	p.push(tok)
}

// closeBracket unwinds the stack to the nearest open bracket, which is
// discarded. It reports false if there is none.
func (p *parser) closeBracket() bool {
	for len(p.stack) > 0 {
		tok := p.pop()
		if tok.Kind == token.OpenBracket {
			return true
		}
		p.emit(tok)
	}
	return false
}
