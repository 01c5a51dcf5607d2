// Package config loads interpreter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kaffee/eval"
	"kaffee/gc"
)

// DefaultPath is read when no -config flag is given. It may be absent.
const DefaultPath = "kaffee.yaml"

// Config holds every setting the CLI and REPL understand
type Config struct {
	GC     GCConfig     `yaml:"gc"`
	Limits LimitsConfig `yaml:"limits"`
	Trace  TraceConfig  `yaml:"trace"`
	REPL   REPLConfig   `yaml:"repl"`
}

// GCConfig selects how far the collector traces
type GCConfig struct {
	Mode string `yaml:"mode"`
}

// LimitsConfig bounds evaluation
type LimitsConfig struct {
	MaxCallDepth int `yaml:"max_call_depth"` // 0 = unlimited
}

// TraceConfig controls execution tracing
type TraceConfig struct {
	Enabled bool     `yaml:"enabled"`
	Filters []string `yaml:"filters"`
}

// REPLConfig customizes the interactive prompt
type REPLConfig struct {
	HistoryFile        string `yaml:"history_file"`
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
}

// Default returns the settings used when no file overrides them
func Default() *Config {
	return &Config{
		GC:     GCConfig{Mode: gc.Transitive.String()},
		Limits: LimitsConfig{MaxCallDepth: eval.DefaultMaxCallDepth},
		REPL: REPLConfig{
			HistoryFile:        ".kaffee_history",
			Prompt:             "kaffee> ",
			ContinuationPrompt: "   ...> ",
		},
	}
}

// ValidationError lists every problem found in a config
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Issues, "; ")
}

// Load reads path over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults
func LoadOptional(path string) (cfg *Config, found bool, err error) {
	cfg, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Validate reports settings the evaluator cannot honor
func (c *Config) Validate() error {
	var issues []string
	if _, err := gc.ParseMode(c.GC.Mode); err != nil {
		issues = append(issues, err.Error())
	}
	if c.Limits.MaxCallDepth < 0 {
		issues = append(issues, fmt.Sprintf("limits.max_call_depth must not be negative, got %d", c.Limits.MaxCallDepth))
	}
	for _, f := range c.Trace.Filters {
		if strings.TrimSpace(f) == "" {
			issues = append(issues, "trace.filters contains an empty pattern")
			break
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Options converts the config into evaluator options. Output and input
// streams are left at their defaults.
func (c *Config) Options() (eval.Options, error) {
	opts := eval.DefaultOptions()
	mode, err := gc.ParseMode(c.GC.Mode)
	if err != nil {
		return opts, err
	}
	opts.GCMode = mode
	opts.MaxCallDepth = c.Limits.MaxCallDepth
	return opts, nil
}
