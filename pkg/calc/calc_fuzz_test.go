package calc

import (
	"testing"

	"github.com/xplshn/bspl/pkg/lexer"
	"github.com/xplshn/bspl/pkg/token"
)

func FuzzRun(f *testing.F) {
	f.Add("12 | (1 << 12)")
	f.Add("~(0xff ^ 0x0f) >> 2")
	f.Add("4294967295 << 32")
	f.Add("((1)")
	f.Add("& 1")
	f.Fuzz(func(t *testing.T, src string) {
		Run(src)
		toks, err := lexer.Tokenize(src)
		if err != nil {
			return
		}
		post, err := Postfix(src)
		if err != nil {
			return
		}
		ops := 0
		for _, tok := range toks {
			if tok.Kind == token.Operator {
				ops++
			}
		}
		for _, tok := range post {
			switch tok.Kind {
			case token.OpenBracket, token.CloseBracket:
				t.Fatalf("postfix of %q contains a bracket: %v", src, post)
			case token.Operator:
				ops--
			}
		}
		if ops != 0 {
			t.Fatalf("postfix of %q changed the operator count: %v", src, post)
		}
	})
}
