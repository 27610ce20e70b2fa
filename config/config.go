// Package config loads named timespan rulesets from YAML, for applications
// that keep their windows (business hours, maintenance windows, blackouts) in
// configuration files.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/jart/timespan"
	"gopkg.in/yaml.v3"
)

// document mirrors the YAML layout:
//
//	timespans:
//	  business-hours:
//	    - "9:00-17:00|mon-fri|*|*"
//	    - "!*|*|25|dec"
//	  always: "*|*|*|*"
type document struct {
	Timespans map[string]ruleLines `yaml:"timespans"`
}

// ruleLines accepts either a sequence of rule strings or a single scalar,
// possibly holding several newline-separated rules.
type ruleLines []string

func (r *ruleLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*r = ruleLines{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*r = ruleLines(list)
		return nil
	default:
		return fmt.Errorf("line %d: timespan set must be a string or a list of strings", node.Line)
	}
}

// Config holds named, pre-parsed rulesets.
type Config struct {
	sets map[string]timespan.Ruleset
}

// Option configures loading.
type Option func(*loader)

type loader struct {
	logger *slog.Logger
}

// WithLogger logs each loaded set at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// Load reads a YAML document and parses every ruleset in it. Rules are parsed
// eagerly so a configuration mistake surfaces at load time, not at first
// match; the error names the offending set and wraps the underlying
// *timespan.ParseError.
func Load(r io.Reader, opts ...Option) (*Config, error) {
	l := &loader{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(l)
	}

	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode timespan config: %w", err)
	}

	cfg := &Config{sets: make(map[string]timespan.Ruleset, len(doc.Timespans))}
	for name, lines := range doc.Timespans {
		rs, err := timespan.ParseRuleset(lines...)
		if err != nil {
			return nil, fmt.Errorf("timespan set %q: %w", name, err)
		}
		cfg.sets[name] = rs
		l.logger.Debug("loaded timespan set", "name", name, "rules", len(rs))
	}
	return cfg, nil
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string, opts ...Option) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Ruleset returns the named ruleset.
func (c *Config) Ruleset(name string) (timespan.Ruleset, bool) {
	rs, ok := c.sets[name]
	return rs, ok
}

// Names lists the configured set names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
