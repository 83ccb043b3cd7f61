package eval

import (
	"errors"
	"strconv"
	"strings"

	"github.com/xplshn/bspl/pkg/token"
)

var (
	ErrMissingArgument = errors.New("missing argument")
	// ErrTooManyArguments is returned bare: it concerns the whole expression.
	ErrTooManyArguments = errors.New("too many arguments")
	ErrOverflowShift    = errors.New("shift amount must be less than 32")
	ErrUnknownKeyword   = errors.New("unknown keyword")
	// ErrExit asks the caller to stop reading input. It is not a failure and
	// should not be shown to the user.
	ErrExit = errors.New("exit")

	// Only hand-built token sequences can produce these; Tokenize and Parse
	// never do.
	ErrInvalidLiteral = errors.New("invalid number literal")
	ErrBracket        = errors.New("bracket in postfix input")
)

// Error is an evaluation error at a character offset of the input line.
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

// Result is the outcome of evaluating one line.
type Result struct {
	// Trace holds, for every reduction in evaluation order, the rendered
	// step followed by its result. A lone literal yields just its value;
	// a command yields its output lines.
	Trace []string
	// Value is the final value of an expression. It is meaningful only
	// when HasValue is set.
	Value    uint32
	HasValue bool
}

// Evaluate runs a postfix token sequence.
func Evaluate(tokens []token.Token) (*Result, error) {
	if len(tokens) == 1 && tokens[0].Kind == token.Keyword {
		return command(tokens[0])
	}

	r := &Result{}
	stack := make([]uint32, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Decimal, token.Hexadecimal:
			v, err := literal(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
		case token.Operator:
			fn := Lookup(tok.Symbol)
			if len(stack) < fn.Arity {
				return nil, &Error{Err: ErrMissingArgument, Col: tok.Pos}
			}
			k := len(stack) - fn.Arity
			v, step, err := fn.Apply(stack[k:])
			if err != nil {
				return nil, &Error{Err: err, Col: tok.Pos}
			}
			stack = append(stack[:k], v)
			r.Trace = append(r.Trace, step, fmtUint(v))
		case token.Keyword:
			return nil, &Error{Err: ErrUnknownKeyword, Col: tok.Pos}
		case token.OpenBracket, token.CloseBracket:
			return nil, &Error{Err: ErrBracket, Col: tok.Pos}
		}
	}

	switch len(stack) {
	case 0:
	case 1:
		r.Value, r.HasValue = stack[0], true
		if len(r.Trace) == 0 {
			r.Trace = append(r.Trace, fmtUint(stack[0]))
		}
	default:
		return nil, ErrTooManyArguments
	}
	return r, nil
}

// literal converts a numeric token.
func literal(tok token.Token) (uint32, error) {
	text, base := tok.Text, 10
	if tok.Kind == token.Hexadecimal {
		digits, ok := strings.CutPrefix(text, "0x")
		if !ok {
			return 0, &Error{Err: ErrInvalidLiteral, Col: tok.Pos}
		}
		text, base = digits, 16
	}
	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, &Error{Err: ErrInvalidLiteral, Col: tok.Pos}
	}
	return uint32(v), nil
}
