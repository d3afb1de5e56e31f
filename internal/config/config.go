// Package config handles loading optimizer configuration from files.
//
// Configuration can be specified in a JSON file named minijs.json or
// .minijsrc, or in a YAML file named minijs.yaml or minijs.yml. The config
// file is searched for in the current directory and parent directories.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HugoDaniel/minijs/internal/minifier"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a config file whose name does not tell
// JSON from YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// MinifyWhitespace removes unnecessary whitespace and newlines
	MinifyWhitespace *bool `json:"minifyWhitespace,omitempty" yaml:"minifyWhitespace,omitempty"`

	// MinifySyntax prints shorter literal spellings
	MinifySyntax *bool `json:"minifySyntax,omitempty" yaml:"minifySyntax,omitempty"`

	// Passes names the fold passes to run; unset runs all of them
	Passes []string `json:"passes,omitempty" yaml:"passes,omitempty"`

	// Convention is "default" or "closure"
	Convention string `json:"convention,omitempty" yaml:"convention,omitempty"`

	// ConstantNames are treated as never reassigned
	ConstantNames []string `json:"constantNames,omitempty" yaml:"constantNames,omitempty"`

	// PureFunctions and PureConstructors extend the built-in pure tables
	PureFunctions    []string `json:"pureFunctions,omitempty" yaml:"pureFunctions,omitempty"`
	PureConstructors []string `json:"pureConstructors,omitempty" yaml:"pureConstructors,omitempty"`

	// AssumeRegexGlobals treats RegExp match state as read even when no
	// reference to it is found
	AssumeRegexGlobals *bool `json:"assumeRegexGlobals,omitempty" yaml:"assumeRegexGlobals,omitempty"`

	// MaxIterations caps the fold rounds
	MaxIterations *int `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"minijs.json",
	".minijsrc",
	"minijs.yaml",
	"minijs.yml",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// Format is the encoding of a config file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from a file name.
func FormatOf(path string) (Format, error) {
	base := filepath.Base(path)
	switch {
	case base == ".minijsrc", strings.HasSuffix(base, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, base)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document. Unknown fields are an error.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg, json.RejectUnknownMembers(true)); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	return &cfg, nil
}

// Encode renders the config in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(c, json.Deterministic(true))
	case FormatYAML:
		return yaml.Marshal(c)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
}

// ToOptions converts a Config to minifier.Options, using defaults for unset fields.
func (c *Config) ToOptions() minifier.Options {
	opts := minifier.DefaultOptions()

	if c.MinifyWhitespace != nil {
		opts.MinifyWhitespace = *c.MinifyWhitespace
	}
	if c.MinifySyntax != nil {
		opts.MinifySyntax = *c.MinifySyntax
	}
	if c.Passes != nil {
		opts.Passes = slices.Clone(c.Passes)
	}
	if c.Convention != "" {
		opts.Convention = c.Convention
	}
	if len(c.ConstantNames) > 0 {
		opts.ConstantNames = slices.Clone(c.ConstantNames)
	}
	if len(c.PureFunctions) > 0 {
		opts.PureFunctions = slices.Clone(c.PureFunctions)
	}
	if len(c.PureConstructors) > 0 {
		opts.PureConstructors = slices.Clone(c.PureConstructors)
	}
	if c.AssumeRegexGlobals != nil {
		opts.AssumeRegexGlobals = *c.AssumeRegexGlobals
	}
	if c.MaxIterations != nil {
		opts.MaxIterations = *c.MaxIterations
	}

	return opts
}

// Merge combines config file options with CLI options.
// CLI options take precedence over config file options.
type MergeOptions struct {
	// CLI flags (nil or empty means not specified on CLI)
	MinifyWhitespace   *bool
	MinifySyntax       *bool
	Passes             []string
	Convention         string
	ConstantNames      []string
	PureFunctions      []string
	AssumeRegexGlobals *bool
	MaxIterations      int
}

// Merge merges CLI options with config file options.
// CLI options override config file options when specified; name lists are
// appended.
func (c *Config) Merge(cli MergeOptions) minifier.Options {
	opts := c.ToOptions()

	// CLI overrides
	if cli.MinifyWhitespace != nil {
		opts.MinifyWhitespace = *cli.MinifyWhitespace
	}
	if cli.MinifySyntax != nil {
		opts.MinifySyntax = *cli.MinifySyntax
	}
	if cli.Passes != nil {
		opts.Passes = cli.Passes
	}
	if cli.Convention != "" {
		opts.Convention = cli.Convention
	}
	if cli.AssumeRegexGlobals != nil {
		opts.AssumeRegexGlobals = *cli.AssumeRegexGlobals
	}
	if cli.MaxIterations > 0 {
		opts.MaxIterations = cli.MaxIterations
	}
	if len(cli.ConstantNames) > 0 {
		opts.ConstantNames = append(opts.ConstantNames, cli.ConstantNames...)
	}
	if len(cli.PureFunctions) > 0 {
		opts.PureFunctions = append(opts.PureFunctions, cli.PureFunctions...)
	}

	return opts
}
