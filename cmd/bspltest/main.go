// bspltest replays transcript files through a bspl binary and compares what
// it prints with the golden result recorded next to each transcript.
//
// A transcript is a file of input lines. Lines starting with "#args " are
// not sent; their fields are passed to bspl as command-line arguments.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/xplshn/bspl/pkg/cli"
)

type Execution struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration,omitempty"`
	TimedOut bool          `json:"timed_out,omitempty"`
}

type FileResult struct {
	File    string     `json:"file"`
	Status  string     `json:"status"` // PASS, FAIL, SKIP, ERROR
	Message string     `json:"message,omitempty"`
	Diff    string     `json:"diff,omitempty"`
	Target  *Execution `json:"target,omitempty"`
}

type options struct {
	target   string
	files    []string
	golden   bool
	timeout  time.Duration
	jobs     int
	output   string
	verbose  bool
	dir      string
}

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cNone   = "\x1b[0m"
)

func main() {
	log.SetFlags(0)

	app := cli.NewApp("bspltest")
	app.Synopsis = "[options]"
	app.Description = "Replays bspl transcripts and compares the output with golden files."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/bspl>"
	app.Since = 2025

	var (
		opts    options
		timeout string
	)
	fs := app.FlagSet
	fs.String(&opts.target, "target", "t", "./bspl", "Path to the bspl binary under test.", "file")
	fs.List(&opts.files, "files", "f", []string{}, "Glob pattern of transcripts to replay (default testdata/transcripts/*.bspl).", "glob")
	fs.Bool(&opts.golden, "generate-golden", "g", false, "Record golden files instead of comparing against them.")
	fs.String(&timeout, "timeout", "", "5s", "Time limit for each run.", "duration")
	fs.Int(&opts.jobs, "jobs", "j", 4, "Number of transcripts replayed in parallel.", "n")
	fs.String(&opts.output, "output", "o", "", "Write a JSON report to <file>.", "file")
	fs.String(&opts.dir, "dir", "", "", "Directory holding golden files (defaults to each transcript's).", "dir")
	fs.Bool(&opts.verbose, "verbose", "v", false, "Show passing and skipped transcripts too.")

	failed := false
	app.Action = func([]string) error {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		opts.timeout = d
		if len(opts.files) == 0 {
			opts.files = []string{"testdata/transcripts/*.bspl"}
		}
		if opts.jobs < 1 {
			opts.jobs = 1
		}
		results, err := runSuite(&opts)
		if err != nil {
			return err
		}
		failed = report(os.Stdout, results, opts.verbose)
		if opts.output != "" {
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return
		}
		log.Fatalf("%s[ERROR]%s %v", cRed, cNone, err)
	}
	if failed {
		os.Exit(1)
	}
}

func runSuite(opts *options) ([]*FileResult, error) {
	var files []string
	for _, pattern := range opts.files {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		log.Printf("%s[WARN]%s no transcripts match %s", cYellow, cNone, strings.Join(opts.files, " "))
		return nil, nil
	}

	tasks := make(chan string, len(files))
	results := make(chan *FileResult, len(files))
	var wg sync.WaitGroup
	for i := 0; i < opts.jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				results <- replay(opts, file)
			}
		}()
	}

	// Identical transcripts are replayed once.
	seen := make(map[uint64]string)
	for _, file := range files {
		sum, err := hashFile(file)
		if err != nil {
			results <- &FileResult{File: file, Status: "ERROR", Message: err.Error()}
			continue
		}
		if orig, ok := seen[sum]; ok {
			results <- &FileResult{File: file, Status: "SKIP", Message: "identical to " + orig}
			continue
		}
		seen[sum] = file
		tasks <- file
	}
	close(tasks)
	wg.Wait()
	close(results)

	var out []*FileResult
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out, nil
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func goldenPath(opts *options, file string) string {
	name := "." + filepath.Base(file) + ".json"
	if opts.dir != "" {
		return filepath.Join(opts.dir, name)
	}
	return filepath.Join(filepath.Dir(file), name)
}

func replay(opts *options, file string) *FileResult {
	data, err := os.ReadFile(file)
	if err != nil {
		return &FileResult{File: file, Status: "ERROR", Message: err.Error()}
	}
	args, input := parseTranscript(string(data))
	got := execute(opts.target, args, input, opts.timeout)
	res := &FileResult{File: file, Target: got}

	golden := goldenPath(opts, file)
	if opts.golden {
		out, err := json.MarshalIndent(got, "", "  ")
		if err == nil {
			err = os.WriteFile(golden, append(out, '\n'), 0o644)
		}
		if err != nil {
			res.Status, res.Message = "ERROR", err.Error()
			return res
		}
		res.Status, res.Message = "PASS", "golden file written to "+golden
		return res
	}

	raw, err := os.ReadFile(golden)
	if err != nil {
		res.Status, res.Message = "ERROR", "no golden file: "+err.Error()
		return res
	}
	var want Execution
	if err := json.Unmarshal(raw, &want); err != nil {
		res.Status, res.Message = "ERROR", fmt.Sprintf("parsing %s: %v", golden, err)
		return res
	}
	if diff := compare(want, *got); diff != "" {
		res.Status, res.Message, res.Diff = "FAIL", "output differs from "+golden, diff
		return res
	}
	res.Status = "PASS"
	return res
}

// parseTranscript splits a transcript into command-line arguments and the
// text fed to standard input.
func parseTranscript(data string) (args []string, input string) {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(data, "\n") {
		if rest, ok := strings.CutPrefix(line, "#args "); ok {
			args = append(args, strings.Fields(rest)...)
			continue
		}
		sb.WriteString(line)
	}
	return args, sb.String()
}

func execute(binary string, args []string, input string, timeout time.Duration) *Execution {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Execution{Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.TimedOut, res.ExitCode = true, -1
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case err != nil:
		res.ExitCode = -1
		stderr.WriteString(err.Error())
	}
	res.Stdout, res.Stderr = stdout.String(), stderr.String()
	return res
}

// compare reports the difference between a golden run and a fresh one.
// Timing is not compared.
func compare(want, got Execution) string {
	return cmp.Diff(want, got, cmpopts.IgnoreFields(Execution{}, "Duration"))
}

// report prints one line per transcript and a summary. It returns whether
// any transcript failed.
func report(w io.Writer, results []*FileResult, verbose bool) bool {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Status]++
		switch r.Status {
		case "PASS", "SKIP":
			if verbose {
				fmt.Fprintf(w, "%s[%s]%s %s %s\n", cGreen, r.Status, cNone, r.File, r.Message)
			}
		default:
			fmt.Fprintf(w, "%s[%s]%s %s: %s\n", cRed, r.Status, cNone, r.File, r.Message)
			if r.Diff != "" {
				fmt.Fprintf(w, "(-want +got):\n%s\n", r.Diff)
			}
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d errors, %d skipped\n", counts["PASS"], counts["FAIL"], counts["ERROR"], counts["SKIP"])
	return counts["FAIL"] > 0 || counts["ERROR"] > 0
}
