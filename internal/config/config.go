// Package config loads the optional hierarchy.yaml file used by the
// hierarchy CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/tree"
)

// FileName is the configuration file looked up in a directory.
const FileName = "hierarchy.yaml"

// SchemaVersion is the schema version assumed when none is given.
const SchemaVersion = "v1.0.0"

// Config represents the optional hierarchy.yaml configuration.
type Config struct {
	Version string        `yaml:"version,omitempty"`
	Root    RootConfig    `yaml:"root"`
	Surface SurfaceConfig `yaml:"surface"`
	Sketch  SketchConfig  `yaml:"sketch"`
	Errors  ErrorsConfig  `yaml:"errors"`
}

// RootConfig contains settings for the root branch.
type RootConfig struct {
	Label string `yaml:"label,omitempty"`
}

// SurfaceConfig contains the initial surface size.
type SurfaceConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// SketchConfig controls sketch rendering. Color is a pointer so an absent
// key can default to true.
type SketchConfig struct {
	Color *bool `yaml:"color,omitempty"`
}

// ErrorsConfig controls error reporting.
type ErrorsConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Dir        string
	ModulePath string
	Version    string
	RootLabel  string
	Width      float64
	Height     float64
	Color      bool
	Verbose    bool
}

// LoadOptional reads hierarchy.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, configError("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads hierarchy.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = SchemaVersion
	}
	if err := validateVersion(version); err != nil {
		return nil, err
	}

	label := strings.TrimSpace(cfg.Root.Label)
	if label == "" {
		label = "#ROOT"
	}

	if cfg.Surface.Width < 0 || cfg.Surface.Height < 0 {
		return nil, configError("surface size must not be negative (got %vx%v)", cfg.Surface.Width, cfg.Surface.Height)
	}

	color := true
	if cfg.Sketch.Color != nil {
		color = *cfg.Sketch.Color
	}

	return &Resolved{
		Dir:        dir,
		ModulePath: modulePath(dir),
		Version:    version,
		RootLabel:  label,
		Width:      cfg.Surface.Width,
		Height:     cfg.Surface.Height,
		Color:      color,
		Verbose:    cfg.Errors.Verbose,
	}, nil
}

// Options converts the resolved values into hierarchy options.
func (r *Resolved) Options() []tree.Option {
	opts := []tree.Option{
		tree.WithRootLabel(r.RootLabel),
		tree.WithSurface(r.Width, r.Height),
	}
	if !r.Color {
		opts = append(opts, tree.WithPlainSketch())
	}
	return opts
}

// Handler returns the error handler the configuration asks for.
func (r *Resolved) Handler() errors.ErrorHandler {
	return &errors.LogHandler{Verbose: r.Verbose}
}

func validateVersion(v string) error {
	if !semver.IsValid(v) {
		return configError("version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != semver.Major(SchemaVersion) {
		return configError("version %q is not supported (want %s.x.x)", v, semver.Major(SchemaVersion))
	}
	return nil
}

// modulePath reports the Go module enclosing dir, if any. It is shown by
// the config command and never required.
func modulePath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			return modfile.ModulePath(data)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func configError(format string, args ...any) *errors.TreeError {
	return &errors.TreeError{
		Op:   "config.Resolve",
		Kind: errors.KindConfig,
		Err:  fmt.Errorf(format, args...),
	}
}
