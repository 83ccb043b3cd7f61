// Package calc chains the lexer, parser and evaluator over one input line.
package calc

import (
	"github.com/xplshn/bspl/pkg/eval"
	"github.com/xplshn/bspl/pkg/lexer"
	"github.com/xplshn/bspl/pkg/parser"
	"github.com/xplshn/bspl/pkg/token"
)

// Postfix tokenizes and parses line.
func Postfix(line string) ([]token.Token, error) {
	toks, err := lexer.Tokenize(line)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// Run evaluates line. The first error from any stage is returned unchanged.
func Run(line string) (*eval.Result, error) {
	post, err := Postfix(line)
	if err != nil {
		return nil, err
	}
	return eval.Evaluate(post)
}
