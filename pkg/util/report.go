package util

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xplshn/bspl/pkg/config"
	"github.com/xplshn/bspl/pkg/eval"
	"github.com/xplshn/bspl/pkg/token"
)

const (
	cRed   = "\033[31m"
	cGreen = "\033[32m"
	cCyan  = "\033[36m"
	cDim   = "\033[2m"
	cNone  = "\033[0m"
)

// Positioned is implemented by errors that point at a character of the
// input line.
type Positioned interface {
	error
	Pos() int
}

// Printer renders results and diagnostics for one output stream.
type Printer struct {
	w     io.Writer
	color bool
	trace bool
	hex   bool
	bin   bool
}

// NewPrinter configures a Printer from cfg. color is whether w is a terminal;
// colours are used only if the color feature is also enabled.
func NewPrinter(w io.Writer, cfg *config.Config, color bool) *Printer {
	return &Printer{
		w:     w,
		color: color && cfg.IsFeatureEnabled(config.FeatColor),
		trace: cfg.IsFeatureEnabled(config.FeatTrace),
		hex:   cfg.IsFeatureEnabled(config.FeatHex),
		bin:   cfg.IsFeatureEnabled(config.FeatBin),
	}
}

// SetOutput redirects the printer to w.
func (p *Printer) SetOutput(w io.Writer) { p.w = w }

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + cNone
}

// Result prints an evaluation result. Reductions are shown as "step = value",
// followed by the final value in decimal, hexadecimal and binary. Command
// output has no final value and is printed line by line.
func (p *Printer) Result(r *eval.Result) {
	if !r.HasValue {
		for _, line := range r.Trace {
			fmt.Fprintln(p.w, line)
		}
		return
	}
	if p.trace && len(r.Trace) >= 2 {
		for i := 0; i+1 < len(r.Trace); i += 2 {
			fmt.Fprintf(p.w, "%s %s\n", r.Trace[i], p.paint(cDim, "= "+r.Trace[i+1]))
		}
	}
	fmt.Fprintf(p.w, "%s %s\n", p.paint(cCyan, "dec"), p.paint(cGreen, strconv.FormatUint(uint64(r.Value), 10)))
	if p.hex {
		fmt.Fprintf(p.w, "%s %s\n", p.paint(cCyan, "hex"), p.paint(cGreen, FormatHex(r.Value)))
	}
	if p.bin {
		fmt.Fprintf(p.w, "%s %s\n", p.paint(cCyan, "bin"), p.paint(cGreen, FormatBinary(r.Value)))
	}
}

// Postfix prints a token sequence in source form.
func (p *Printer) Postfix(toks []token.Token) {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.Source()
	}
	fmt.Fprintf(p.w, "%s %s\n", p.paint(cCyan, "rpn"), strings.Join(s, " "))
}

// Error prints err. If err points into line, the line is echoed with a
// caret under the offending character. eval.ErrExit is never printed.
func (p *Printer) Error(line string, err error) {
	if errors.Is(err, eval.ErrExit) {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.paint(cRed, "error:"), Message(err))

	var perr Positioned
	if !errors.As(err, &perr) {
		return
	}
	runes := []rune(line)
	pos := perr.Pos()
	if pos < 0 || pos > len(runes) {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", line)
	fmt.Fprintf(p.w, "  %s%s\n", marginOf(runes[:pos]), p.paint(cGreen, "^"))
}

// Message describes err without the column prefix that positional errors
// carry in their Error method.
func Message(err error) string {
	var perr Positioned
	if errors.As(err, &perr) {
		if inner := errors.Unwrap(perr); inner != nil {
			return inner.Error() + " at column " + strconv.Itoa(perr.Pos()+1)
		}
	}
	return err.Error()
}

// marginOf blanks prefix out, keeping tabs so the caret lines up.
func marginOf(prefix []rune) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

// FormatHex renders v as lower-case hexadecimal with a 0x prefix.
func FormatHex(v uint32) string { return "0x" + strconv.FormatUint(uint64(v), 16) }

// FormatBinary renders v in binary with a 0b prefix.
func FormatBinary(v uint32) string { return "0b" + strconv.FormatUint(uint64(v), 2) }
