package eval

import (
	"strconv"

	"github.com/xplshn/bspl/pkg/token"
)

// Function is a function registry entry. Apply receives exactly Arity
// arguments in source order and returns the result together with the
// rendered step, e.g. "1 << 12". Errors returned by Apply carry no position;
// Evaluate attaches the operator's.
type Function struct {
	Arity int
	Apply func(args []uint32) (uint32, string, error)
}

// Lookup returns the registry entry for sym.
func Lookup(sym token.Symbol) Function {
	switch sym {
	case token.Not:
		return Function{1, not}
	case token.And:
		return binary(sym, func(a, b uint32) uint32 { return a & b })
	case token.Or:
		return binary(sym, func(a, b uint32) uint32 { return a | b })
	case token.Xor:
		return binary(sym, func(a, b uint32) uint32 { return a ^ b })
	case token.LShift:
		return shift(sym, func(a, b uint32) uint32 { return a << b })
	case token.RShift:
		return shift(sym, func(a, b uint32) uint32 { return a >> b })
	}
	panic("eval: unknown operator symbol " + sym.String())
}

func not(args []uint32) (uint32, string, error) {
	a := args[0]
	return ^a, "~" + fmtUint(a), nil
}

func binary(sym token.Symbol, op func(a, b uint32) uint32) Function {
	return Function{2, func(args []uint32) (uint32, string, error) {
		a, b := args[0], args[1]
		return op(a, b), render(a, sym, b), nil
	}}
}

// shift is binary with the shift amount limited to the operand width.
func shift(sym token.Symbol, op func(a, b uint32) uint32) Function {
	return Function{2, func(args []uint32) (uint32, string, error) {
		a, b := args[0], args[1]
		if b >= 32 {
			return 0, "", ErrOverflowShift
		}
		return op(a, b), render(a, sym, b), nil
	}}
}

func render(a uint32, sym token.Symbol, b uint32) string {
	return fmtUint(a) + " " + sym.String() + " " + fmtUint(b)
}

func fmtUint(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
