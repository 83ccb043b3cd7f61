// Package repl reads expressions line by line, evaluates them and prints the
// outcome. On a terminal it edits lines in raw mode; otherwise it reads plain
// lines until end of input.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/xplshn/bspl/pkg/calc"
	"github.com/xplshn/bspl/pkg/eval"
	"github.com/xplshn/bspl/pkg/history"
	"github.com/xplshn/bspl/pkg/util"
)

// Loop holds the per-session state of the read-eval-print loop.
type Loop struct {
	Prompt  string
	Postfix bool
	Printer *util.Printer
	// History, when set, receives every non-blank line and is saved as the
	// loop ends.
	History *history.History
	// Warn reports failures that do not stop the loop, such as an
	// unwritable history file.
	Warn func(error)

	failed int
}

// Failed returns how many lines ended in an error.
func (l *Loop) Failed() int { return l.failed }

// Eval evaluates one line and prints the outcome, preceded by its postfix
// form when Postfix is set. Blank lines are ignored.
// eval.ErrExit is returned unprinted; any other error is printed and
// returned.
func (l *Loop) Eval(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	res, err := calc.Run(line)
	if err != nil {
		if !errors.Is(err, eval.ErrExit) {
			l.failed++
		}
		l.Printer.Error(line, err)
		return err
	}
	if l.Postfix && res.HasValue {
		if post, err := calc.Postfix(line); err == nil {
			l.Printer.Postfix(post)
		}
	}
	l.Printer.Result(res)
	return nil
}

// Run reads lines from r until end of input or exit. The prompt is written
// to w before each line when w is non-nil.
func (l *Loop) Run(r io.Reader, w io.Writer) error {
	defer l.save()
	sc := bufio.NewScanner(r)
	for {
		if w != nil {
			fmt.Fprint(w, l.Prompt)
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if l.History != nil {
			l.History.Add(line)
		}
		if err := l.Eval(line); errors.Is(err, eval.ErrExit) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// RunTerminal puts the terminal on fd into raw mode and edits lines with
// term.Terminal over rw. Ctrl-D on an empty line and Ctrl-C end the loop.
func (l *Loop) RunTerminal(fd int, rw io.ReadWriter) error {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, state)
	defer l.save()

	t := term.NewTerminal(rw, l.Prompt)
	if l.History != nil {
		t.History = l.History
	}
	if width, height, err := term.GetSize(fd); err == nil {
		t.SetSize(width, height)
	}
	l.Printer.SetOutput(t)

	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil && !errors.Is(err, term.ErrPasteIndicator) {
			return fmt.Errorf("reading input: %w", err)
		}
		if err := l.Eval(line); errors.Is(err, eval.ErrExit) {
			return nil
		}
	}
}

func (l *Loop) save() {
	if l.History == nil {
		return
	}
	if err := l.History.Save(); err != nil && l.Warn != nil {
		l.Warn(err)
	}
}
