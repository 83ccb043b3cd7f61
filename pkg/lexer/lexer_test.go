package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xplshn/bspl/pkg/token"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token.Token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// literals
		{"0", []token.Token{token.Dec("0", 0)}},
		{"4294967295", []token.Token{token.Dec("4294967295", 0)}},
		{"0x0", []token.Token{token.Hex("0x0", 0)}},
		{"0xffffffff", []token.Token{token.Hex("0xffffffff", 0)}},
		{"0xDeadBeef", []token.Token{token.Hex("0xDeadBeef", 0)}},
		{"007", []token.Token{token.Dec("007", 0)}},
		{"  12", []token.Token{token.Dec("12", 2)}},
		// keywords
		{"help", []token.Token{token.Word("help", 0)}},
		{"EXIT", []token.Token{token.Word("EXIT", 0)}},
		{"foo", []token.Token{token.Word("foo", 0)}},
		// operators
		{"~", []token.Token{token.Op(token.Not, 0)}},
		{"&|^", []token.Token{token.Op(token.And, 0), token.Op(token.Or, 1), token.Op(token.Xor, 2)}},
		{"<<>>", []token.Token{token.Op(token.LShift, 0), token.Op(token.RShift, 2)}},
		{"1 << 12", []token.Token{token.Dec("1", 0), token.Op(token.LShift, 2), token.Dec("12", 5)}},
		{"~12", []token.Token{token.Op(token.Not, 0), token.Dec("12", 1)}},
		// brackets
		{"()", []token.Token{token.Open(0), token.Close(1)}},
		{
			"12 | (1 << 12)",
			[]token.Token{
				token.Dec("12", 0), token.Op(token.Or, 3), token.Open(5),
				token.Dec("1", 6), token.Op(token.LShift, 8), token.Dec("12", 11),
				token.Close(13),
			},
		},
		{"(0x1f)&a", []token.Token{token.Open(0), token.Hex("0x1f", 1), token.Close(5), token.Op(token.And, 6), token.Word("a", 7)}},
		// offsets count characters, not bytes
		{"é ~1", []token.Token{token.Word("é", 0), token.Op(token.Not, 2), token.Dec("1", 3)}},
	}

	for _, c := range cases {
		got, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("tokenizing %q: unexpected error %v", c.src, err)
			continue
		}
		if diff := cmp.Diff(c.tokens, got); diff != "" {
			t.Errorf("tokenizing %q: mismatch (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src string
		err error
		pos int
	}{
		{"4294967296", ErrRadix, 0},
		{"1 + 0x100000000", ErrUnknownOperator, 2},
		{"0x100000000", ErrRadix, 0},
		{"12ab", ErrRadix, 0},
		{"1 & 12ab", ErrRadix, 4},
		{"0x", ErrRadix, 0},
		{"0xg", ErrRadix, 0},
		{"a1", ErrRadix, 0},
		{"1 > 2", ErrUnknownOperator, 2},
		{"1 < 2", ErrUnknownOperator, 2},
		{"1 <", ErrUnknownOperator, 2},
		{"1 >< 2", ErrUnknownOperator, 2},
		{"$", ErrUnknownOperator, 0},
		{"1 + 1", ErrUnknownOperator, 2},
		{"é $", ErrUnknownOperator, 2},
		{"1_000", ErrUnknownOperator, 1},
	}

	for _, c := range cases {
		got, err := Tokenize(c.src)
		if got != nil {
			t.Errorf("tokenizing %q: expected no tokens, got %v", c.src, got)
		}
		if !errors.Is(err, c.err) {
			t.Errorf("tokenizing %q: want %v, got %v", c.src, c.err, err)
			continue
		}
		var lerr *Error
		if !errors.As(err, &lerr) {
			t.Errorf("tokenizing %q: error %v is not a *Error", c.src, err)
			continue
		}
		if lerr.Pos() != c.pos {
			t.Errorf("tokenizing %q: want error at %d, got %d", c.src, c.pos, lerr.Pos())
		}
	}
}
