package lexer

import (
	"errors"
	"testing"
)

func FuzzTokenize(f *testing.F) {
	f.Add("12 | (1 << 12)")
	f.Add("~0xffffffff")
	f.Add("4294967296")
	f.Add("help")
	f.Add("1 >< 2")
	f.Fuzz(func(t *testing.T, src string) {
		toks, err := Tokenize(src)
		if err != nil {
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("tokenizing %q: error %v is not a *Error", src, err)
			}
			if lerr.Pos() < 0 || lerr.Pos() >= len([]rune(src)) {
				t.Fatalf("tokenizing %q: error offset %d out of range", src, lerr.Pos())
			}
			return
		}
		for i := 1; i < len(toks); i++ {
			if toks[i].Pos <= toks[i-1].Pos {
				t.Fatalf("tokenizing %q: offsets not increasing: %v", src, toks)
			}
		}
	})
}
