package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	quietFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(quietFile, []byte("features:\n  hex: false\n  bin: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		args   []string
		stdin  string
		status int
		stdout string
	}{
		{
			name:   "eval flag",
			args:   []string{"-e", "1 << 12", "-Fno-bin"},
			stdout: "1 << 12 = 4096\ndec 4096\nhex 0x1000\n",
		},
		{
			name:   "positional expressions with a failure",
			args:   []string{"-Fno-trace", "-Fno-hex", "-Fno-bin", "~0", "1 << 32"},
			status: 1,
			stdout: "dec 4294967295\nerror: shift amount must be less than 32 at column 3\n  1 << 32\n    ^\n",
		},
		{
			name:   "exit stops one-shot evaluation",
			args:   []string{"-Fno-hex", "-Fno-bin", "-e", "1", "-e", "exit", "-e", "2"},
			stdout: "dec 1\n",
		},
		{
			name:   "piped input",
			stdin:  "1 | 2\nexit\n3\n",
			stdout: "1 | 2 = 3\ndec 3\nhex 0x3\nbin 0b11\n",
		},
		{
			name:   "postfix",
			args:   []string{"--postfix", "-Fno-trace", "-Fno-hex", "-Fno-bin", "-e", "~(1 | 2)"},
			stdout: "rpn 1 2 | ~\ndec 4294967292\n",
		},
		{
			name:   "config file",
			args:   []string{"--config", quietFile, "0x10"},
			stdout: "dec 16\n",
		},
		{
			name:   "flags override config file",
			args:   []string{"--config=" + quietFile, "-Fhex", "0x10"},
			stdout: "dec 16\nhex 0x10\n",
		},
	}

	for _, c := range cases {
		var stdout, stderr bytes.Buffer
		status := run(c.args, strings.NewReader(c.stdin), &stdout, &stderr)
		if status != c.status {
			t.Errorf("%s: status %d, want %d (stderr %q)", c.name, status, c.status, stderr.String())
		}
		if diff := cmp.Diff(c.stdout, stdout.String()); diff != "" {
			t.Errorf("%s: stdout mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestRunFailures(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	badFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(badFile, []byte("features:\n  sparkles: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown flag", []string{"--frobnicate"}, "unknown flag: --frobnicate"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "1"}, "bspl: "},
		{"unknown feature", []string{"--config", badFile, "1"}, "unknown feature 'sparkles'"},
		{"negative history size", []string{"--history-size", "-1", "1"}, "history size must not be negative"},
	}

	for _, c := range cases {
		var stdout, stderr bytes.Buffer
		if status := run(c.args, strings.NewReader(""), &stdout, &stderr); status != 1 {
			t.Errorf("%s: status %d, want 1", c.name, status)
		}
		if !strings.Contains(stderr.String(), c.stderr) {
			t.Errorf("%s: stderr %q does not contain %q", c.name, stderr.String(), c.stderr)
		}
	}
}

func TestRunDumpConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	args := []string{"--dump-config", "-p", "bspl> ", "--history", "/tmp/h", "-Fno-color"}
	if status := run(args, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Fatalf("status %d, stderr %q", status, stderr.String())
	}
	for _, want := range []string{"bspl> ", "file: /tmp/h", "color: false", "trace: true", "size: 500"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("dump lacks %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run([]string{"--help"}, strings.NewReader(""), &stdout, &stderr); status != 0 {
		t.Errorf("status %d, want 0", status)
	}
	for _, want := range []string{"--eval", "--history-size", "-Fno-<feature>", "trace"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help page lacks %q:\n%s", want, stdout.String())
		}
	}
}

// TestTranscripts keeps the golden files replayed by bspltest in step with
// the binary.
func TestTranscripts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "transcripts", "*.bspl"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no transcripts found")
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		raw, err := os.ReadFile(filepath.Join(filepath.Dir(file), "."+filepath.Base(file)+".json"))
		if err != nil {
			t.Fatal(err)
		}
		var want struct {
			Stdout   string `json:"stdout"`
			Stderr   string `json:"stderr"`
			ExitCode int    `json:"exitCode"`
		}
		if err := json.Unmarshal(raw, &want); err != nil {
			t.Fatalf("%s: %v", file, err)
		}

		var args []string
		var input strings.Builder
		for _, line := range strings.SplitAfter(string(data), "\n") {
			if rest, ok := strings.CutPrefix(line, "#args "); ok {
				args = append(args, strings.Fields(rest)...)
				continue
			}
			input.WriteString(line)
		}

		var stdout, stderr bytes.Buffer
		status := run(args, strings.NewReader(input.String()), &stdout, &stderr)
		if status != want.ExitCode {
			t.Errorf("%s: status %d, want %d", file, status, want.ExitCode)
		}
		if diff := cmp.Diff(want.Stdout, stdout.String()); diff != "" {
			t.Errorf("%s: stdout mismatch (-want +got):\n%s", file, diff)
		}
		if diff := cmp.Diff(want.Stderr, stderr.String()); diff != "" {
			t.Errorf("%s: stderr mismatch (-want +got):\n%s", file, diff)
		}
	}
}
