package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xplshn/bspl/pkg/cli"
)

type Feature int

const (
	FeatTrace Feature = iota
	FeatHex
	FeatBin
	FeatColor
	FeatHistory
	FeatCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features    map[Feature]Info
	FeatureMap  map[string]Feature
	Prompt      string
	HistoryFile string
	HistorySize int
	Postfix     bool
}

func NewConfig() *Config {
	cfg := &Config{
		FeatureMap:  make(map[string]Feature),
		Prompt:      "=> ",
		HistoryFile: DefaultHistoryPath(),
		HistorySize: 500,
	}

	features := map[Feature]Info{
		FeatTrace:   {"trace", true, "Print every reduction step before the result."},
		FeatHex:     {"hex", true, "Print the result in hexadecimal."},
		FeatBin:     {"bin", true, "Print the result in binary."},
		FeatColor:   {"color", true, "Colour errors and results when writing to a terminal."},
		FeatHistory: {"history", true, "Keep input history across sessions."},
	}

	cfg.Features = features
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

// SetupFlagGroups registers -F<feature> and -Fno-<feature> on fs. The
// returned entries are indexed by Feature and are read back by
// ApplyFlagGroups once fs has been parsed.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) []cli.FlagGroupEntry {
	entries := make([]cli.FlagGroupEntry, FeatCount)
	for i := Feature(0); i < FeatCount; i++ {
		info := c.Features[i]
		enabled, disabled := info.Enabled, false
		entries[i] = cli.FlagGroupEntry{
			Name:     info.Name,
			Prefix:   "F",
			Usage:    info.Description,
			Enabled:  &enabled,
			Disabled: &disabled,
		}
	}
	fs.AddFlagGroup("Features", "Toggle output and session features.", "feature", "Available Features:", entries)
	return entries
}

// ApplyFlagGroups applies the feature switches that were given on the
// command line. Switches left at their defaults do not override settings
// loaded from a config file.
func (c *Config) ApplyFlagGroups(fs *cli.FlagSet, entries []cli.FlagGroupEntry) {
	for i, entry := range entries {
		if fs.Changed(entry.Prefix+entry.Name) && *entry.Enabled {
			c.SetFeature(Feature(i), true)
		}
		if fs.Changed(entry.Prefix+"no-"+entry.Name) && *entry.Disabled {
			c.SetFeature(Feature(i), false)
		}
	}
}

// File is the on-disk form of a Config.
type File struct {
	Prompt  *string `yaml:"prompt,omitempty"`
	Postfix *bool   `yaml:"postfix,omitempty"`
	History struct {
		File string `yaml:"file,omitempty"`
		Size *int   `yaml:"size,omitempty"`
	} `yaml:"history,omitempty"`
	Features map[string]bool `yaml:"features,omitempty"`
}

// Load reads a YAML config file into c. Keys absent from the file keep
// their current values.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return c.apply(path, &f)
}

func (c *Config) apply(path string, f *File) error {
	if f.Prompt != nil {
		c.Prompt = *f.Prompt
	}
	if f.Postfix != nil {
		c.Postfix = *f.Postfix
	}
	if f.History.File != "" {
		c.HistoryFile = expandHome(f.History.File)
	}
	if f.History.Size != nil {
		if *f.History.Size < 0 {
			return fmt.Errorf("%s: history size must not be negative, got %d", path, *f.History.Size)
		}
		c.HistorySize = *f.History.Size
	}
	for name, enabled := range f.Features {
		ft, ok := c.FeatureMap[name]
		if !ok {
			return fmt.Errorf("%s: unknown feature '%s'", path, name)
		}
		c.SetFeature(ft, enabled)
	}
	return nil
}

// Dump renders c in the config file format.
func (c *Config) Dump() ([]byte, error) {
	var f File
	f.Prompt, f.Postfix = &c.Prompt, &c.Postfix
	f.History.File, f.History.Size = c.HistoryFile, &c.HistorySize
	f.Features = make(map[string]bool, len(c.Features))
	for _, info := range c.Features {
		f.Features[info.Name] = info.Enabled
	}
	return yaml.Marshal(&f)
}

// DefaultConfigPath is $XDG_CONFIG_HOME/bspl/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bspl", "config.yaml")
}

// DefaultHistoryPath is $XDG_STATE_HOME/bspl/history, falling back to
// ~/.local/state.
func DefaultHistoryPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "bspl", "history")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "bspl", "history")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
