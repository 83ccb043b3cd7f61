package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/xplshn/bspl/pkg/cli"
	"github.com/xplshn/bspl/pkg/config"
	"github.com/xplshn/bspl/pkg/eval"
	"github.com/xplshn/bspl/pkg/history"
	"github.com/xplshn/bspl/pkg/repl"
	"github.com/xplshn/bspl/pkg/util"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "bspl: ", 0)

	app := cli.NewApp("bspl")
	app.Synopsis = "[options] [expression ...]"
	app.Description = "An interactive calculator for bitwise expressions over unsigned 32-bit integers. Every reduction step is shown alongside the result."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/bspl>"
	app.Since = 2025
	app.Stdout, app.Stderr = stdout, stderr

	cfg := config.NewConfig()

	var (
		exprs       []string
		configFile  string
		historyFile string
		historySize int
		prompt      string
		quiet       bool
		postfix     bool
		dumpConfig  bool
	)

	fs := app.FlagSet
	fs.List(&exprs, "eval", "e", []string{}, "Evaluate <expr>, print the result and exit.", "expr")
	fs.String(&configFile, "config", "", config.DefaultConfigPath(), "Read settings from <file>.", "file")
	fs.String(&historyFile, "history", "", cfg.HistoryFile, "Keep input history in <file>.", "file")
	fs.Int(&historySize, "history-size", "", cfg.HistorySize, "Remember at most <n> lines of history.", "n")
	fs.String(&prompt, "prompt", "p", cfg.Prompt, "Use <s> as the prompt.", "s")
	fs.Bool(&quiet, "quiet", "q", false, "Do not print the banner.")
	fs.Bool(&postfix, "postfix", "", false, "Also print the postfix form of each expression.")
	fs.Bool(&dumpConfig, "dump-config", "", false, "Print the effective configuration as YAML and exit.")
	featureFlags := cfg.SetupFlagGroups(fs)

	status := 0
	action := func(positional []string) error {
		if err := loadConfig(cfg, configFile, fs.Changed("config")); err != nil {
			return err
		}
		if fs.Changed("history") {
			cfg.HistoryFile = historyFile
		}
		if fs.Changed("history-size") {
			if historySize < 0 {
				return fmt.Errorf("history size must not be negative, got %d", historySize)
			}
			cfg.HistorySize = historySize
		}
		if fs.Changed("prompt") {
			cfg.Prompt = prompt
		}
		if fs.Changed("postfix") {
			cfg.Postfix = postfix
		}
		cfg.ApplyFlagGroups(fs, featureFlags)

		if dumpConfig {
			data, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = stdout.Write(data)
			return err
		}

		loop := &repl.Loop{
			Prompt:  cfg.Prompt,
			Postfix: cfg.Postfix,
			Printer: util.NewPrinter(stdout, cfg, isTerminal(stdout)),
			Warn:    func(err error) { logger.Printf("warning: %v", err) },
		}

		if exprs = append(exprs, positional...); len(exprs) > 0 {
			for _, expr := range exprs {
				if err := loop.Eval(expr); errors.Is(err, eval.ErrExit) {
					break
				}
			}
			if loop.Failed() > 0 {
				status = 1
			}
			return nil
		}

		in, ok := stdin.(*os.File)
		if !ok || !term.IsTerminal(int(in.Fd())) || !isTerminal(stdout) {
			return loop.Run(stdin, nil)
		}

		if cfg.IsFeatureEnabled(config.FeatHistory) && cfg.HistoryFile != "" && cfg.HistorySize > 0 {
			hist, err := history.Open(cfg.HistoryFile, cfg.HistorySize)
			if err != nil {
				logger.Printf("warning: %v", err)
			}
			loop.History = hist
		}
		if !quiet {
			banner(stdout)
		}
		return loop.RunTerminal(int(in.Fd()), struct {
			io.Reader
			io.Writer
		}{stdin, stdout})
	}

	app.Action = func(positional []string) error {
		err := action(positional)
		if err != nil {
			logger.Print(err)
		}
		return err
	}

	if err := app.Run(args); err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return 0
		}
		return 1
	}
	return status
}

// loadConfig reads the config file. A missing file is only an error when it
// was named on the command line.
func loadConfig(cfg *config.Config, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := cfg.Load(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	return err
}

func banner(w io.Writer) {
	fmt.Fprintf(w, "bspl %s\n", eval.Version)
	fmt.Fprintln(w, "Bit-Shift-Print Loop")
	fmt.Fprintln(w, "Type 'help', or 'license' for more information.")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
