package calc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xplshn/bspl/pkg/eval"
	"github.com/xplshn/bspl/pkg/lexer"
	"github.com/xplshn/bspl/pkg/parser"
	"github.com/xplshn/bspl/pkg/token"
)

func TestRun(t *testing.T) {
	cases := []struct {
		src   string
		trace []string
	}{
		{"", nil},
		{"   ", nil},
		{"1 << 12", []string{"1 << 12", "4096"}},
		{"~12", []string{"~12", "4294967283"}},
		{"12 | (1 << 12)", []string{"1 << 12", "4096", "12 | 4096", "4108"}},
		{"version", []string{"bspl " + eval.Version}},
	}
	for _, c := range cases {
		r, err := Run(c.src)
		if err != nil {
			t.Errorf("running %q: unexpected error %v", c.src, err)
			continue
		}
		if diff := cmp.Diff(c.trace, r.Trace); diff != "" {
			t.Errorf("running %q: trace mismatch (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		src string
		err error
	}{
		// the first failing stage wins
		{"4294967296 << 32", lexer.ErrRadix},
		{"(1 << 32", parser.ErrMissingClosingBracket},
		{"1 > 2)", lexer.ErrUnknownOperator},
		{"help me", parser.ErrKeyword},
		{"4294967295 << 32", eval.ErrOverflowShift},
		{"& 1", eval.ErrMissingArgument},
		{"1 2", eval.ErrTooManyArguments},
		{"exit", eval.ErrExit},
	}
	for _, c := range cases {
		if _, err := Run(c.src); !errors.Is(err, c.err) {
			t.Errorf("running %q: want %v, got %v", c.src, c.err, err)
		}
	}
}

func TestPostfix(t *testing.T) {
	got, err := Postfix("12 | (1 << 12)")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Token{
		token.Dec("12", 0),
		token.Dec("1", 6),
		token.Dec("12", 11),
		token.Op(token.LShift, 8),
		token.Op(token.Or, 3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
