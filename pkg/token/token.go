package token

import "strconv"

// Kind is the closed set of token kinds produced by the lexer.
type Kind int

const (
	OpenBracket Kind = iota
	CloseBracket
	Decimal
	Hexadecimal
	Keyword
	Operator
)

func (k Kind) String() string {
	switch k {
	case OpenBracket:
		return "OpenBracket"
	case CloseBracket:
		return "CloseBracket"
	case Decimal:
		return "Decimal"
	case Hexadecimal:
		return "Hexadecimal"
	case Keyword:
		return "Keyword"
	case Operator:
		return "Operator"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Symbol identifies an operator. It keys both the parser's operator table and
// the evaluator's function registry.
type Symbol int

const (
	Or Symbol = iota
	And
	Xor
	Not
	LShift
	RShift
)

// Symbols lists every operator symbol, in declaration order.
var Symbols = []Symbol{Or, And, Xor, Not, LShift, RShift}

// String returns the operator as it is written in source.
func (s Symbol) String() string {
	switch s {
	case Or:
		return "|"
	case And:
		return "&"
	case Xor:
		return "^"
	case Not:
		return "~"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	}
	return "Symbol(" + strconv.Itoa(int(s)) + ")"
}

// Keywords are the standalone commands, in lower case.
var Keywords = []string{"help", "license", "version", "exit"}

// Token is a lexical token together with the character offset of its first
// character in the input line. Text is set for Decimal, Hexadecimal and
// Keyword tokens; Symbol only for Operator tokens.
type Token struct {
	Kind   Kind
	Text   string
	Symbol Symbol
	Pos    int
}

func (t Token) String() string {
	var s string
	switch t.Kind {
	case OpenBracket:
		s = "("
	case CloseBracket:
		s = ")"
	case Operator:
		s = t.Symbol.String()
	default:
		s = t.Text
	}
	return t.Kind.String() + ":" + s + "@" + strconv.Itoa(t.Pos)
}

// Source returns the token as it appeared in the input.
func (t Token) Source() string {
	switch t.Kind {
	case OpenBracket:
		return "("
	case CloseBracket:
		return ")"
	case Operator:
		return t.Symbol.String()
	}
	return t.Text
}

// IsBracket reports whether t is an open or close bracket.
func (t Token) IsBracket() bool {
	return t.Kind == OpenBracket || t.Kind == CloseBracket
}

// IsLiteral reports whether t is a numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Decimal || t.Kind == Hexadecimal
}

// Constructors, one per kind.
func Open(pos int) Token              { return Token{Kind: OpenBracket, Pos: pos} }
func Close(pos int) Token             { return Token{Kind: CloseBracket, Pos: pos} }
func Op(sym Symbol, pos int) Token    { return Token{Kind: Operator, Symbol: sym, Pos: pos} }
func Dec(text string, pos int) Token  { return Token{Kind: Decimal, Text: text, Pos: pos} }
func Hex(text string, pos int) Token  { return Token{Kind: Hexadecimal, Text: text, Pos: pos} }
func Word(text string, pos int) Token { return Token{Kind: Keyword, Text: text, Pos: pos} }
