// Package history keeps REPL input lines across sessions. A History plugs
// into term.Terminal so the arrow keys walk through it.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/term"
)

var _ term.History = (*History)(nil)

// History is a bounded list of input lines, oldest first. Adding a line that
// is already present moves it to the most recent slot.
type History struct {
	entries []string
	seen    map[uint64]int
	max     int
	path    string
}

// New returns an in-memory history holding at most max lines.
func New(max int) *History {
	return &History{seen: make(map[uint64]int), max: max}
}

// Open returns a history backed by the file at path, loading whatever the
// file already holds. A missing file is not an error.
func Open(path string, max int) (*History, error) {
	h := New(max)
	h.path = path
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return h, fmt.Errorf("reading history: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return h, fmt.Errorf("reading history %s: %w", path, err)
	}
	return h, nil
}

// Add records entry as the most recent line. Blank lines are dropped.
func (h *History) Add(entry string) {
	if h.max <= 0 || strings.TrimSpace(entry) == "" || strings.ContainsAny(entry, "\r\n") {
		return
	}
	sum := xxhash.Sum64String(entry)
	if h.seen[sum] > 0 {
		for i, e := range h.entries {
			if e == entry {
				h.remove(i)
				break
			}
		}
	}
	h.entries = append(h.entries, entry)
	h.seen[sum]++
	for len(h.entries) > h.max {
		h.remove(0)
	}
}

func (h *History) remove(i int) {
	sum := xxhash.Sum64String(h.entries[i])
	if h.seen[sum]--; h.seen[sum] <= 0 {
		delete(h.seen, sum)
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
}

// Len returns the number of lines held.
func (h *History) Len() int { return len(h.entries) }

// At returns a line; 0 is the most recent. It panics if idx is out of range,
// as term.History requires.
func (h *History) At(idx int) string {
	if idx < 0 || idx >= len(h.entries) {
		panic(fmt.Sprintf("history: index %d out of range [0, %d)", idx, len(h.entries)))
	}
	return h.entries[len(h.entries)-1-idx]
}

// Entries returns a copy of the lines held, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Path returns the backing file, or "" for an in-memory history.
func (h *History) Path() string { return h.path }

// Save writes the history to its backing file, replacing it atomically.
// It does nothing for an in-memory history.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range h.entries {
		w.WriteString(e)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("saving history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
