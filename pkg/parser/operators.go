package parser

import "github.com/xplshn/bspl/pkg/token"

// Assoc is the grouping of operators with equal precedence.
type Assoc int

const (
	LeftToRight Assoc = iota
	RightToLeft
)

func (a Assoc) String() string {
	if a == RightToLeft {
		return "right-to-left"
	}
	return "left-to-right"
}

// Operator describes how an operator symbol binds. A lower Prec binds
// tighter.
//
//	| Prec | Operator | Symbol | Assoc         |
//	|------|----------|--------|---------------|
//	| 1    | Brackets | ( )    | left-to-right |
//	| 2    | NOT      | ~      | right-to-left |
//	| 3    | Shift    | << >>  | left-to-right |
//	| 4    | AND      | &      | left-to-right |
//	| 5    | XOR      | ^      | left-to-right |
//	| 6    | OR       | |      | left-to-right |
type Operator struct {
	Prec  int
	Assoc Assoc
}

// Lookup returns the operator table entry for sym.
func Lookup(sym token.Symbol) Operator {
	switch sym {
	case token.Not:
		return Operator{2, RightToLeft}
	case token.LShift, token.RShift:
		return Operator{3, LeftToRight}
	case token.And:
		return Operator{4, LeftToRight}
	case token.Xor:
		return Operator{5, LeftToRight}
	case token.Or:
		return Operator{6, LeftToRight}
	}
	panic("parser: unknown operator symbol " + sym.String())
}

// yields reports whether top, already on the operator stack, must be moved
// to the output before in is pushed.
func yields(top, in Operator) bool {
	if in.Assoc == LeftToRight {
		return in.Prec >= top.Prec
	}
	return in.Prec > top.Prec
}
