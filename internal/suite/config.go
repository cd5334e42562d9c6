// Package suite loads goldiff.toml, the per-repository configuration of
// a golden fixture suite: where the expected and actual trees live and
// which normalization policy comparisons use.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"goldiff/internal/compare"
	"goldiff/internal/harness"
)

// FileName is the manifest looked up from the working directory upward.
const FileName = "goldiff.toml"

// Config is the parsed manifest.
type Config struct {
	Suite   SuiteConfig   `toml:"suite"`
	Compare CompareConfig `toml:"compare"`
	Run     RunConfig     `toml:"run"`

	// Root is the directory holding the manifest; relative paths in the
	// manifest resolve against it.
	Root string `toml:"-"`
}

type SuiteConfig struct {
	Name string `toml:"name"`
	// Fixtures is the root of the checked-in golden files.
	Fixtures string `toml:"fixtures"`
	// Actual is the root of freshly produced compiler output.
	Actual string `toml:"actual"`
	// Extension filters golden files, ".stderr" by default.
	Extension string `toml:"extension"`
}

type CompareConfig struct {
	Placeholder            string   `toml:"placeholder"`
	PathPrefixes           []string `toml:"path_prefixes"`
	TrimTrailingWhitespace bool     `toml:"trim_trailing_whitespace"`
	AllDiffs               bool     `toml:"all_diffs"`
}

type RunConfig struct {
	Jobs int `toml:"jobs"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Suite: SuiteConfig{
			Fixtures:  "testdata",
			Actual:    "testdata",
			Extension: harness.DefaultExtension,
		},
		Compare: CompareConfig{
			TrimTrailingWhitespace: true,
			AllDiffs:               true,
		},
		Root: ".",
	}
}

// Find walks from startDir toward the filesystem root looking for the
// manifest. The second return value reports whether one was found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates a manifest file.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("suite") {
		return Config{}, fmt.Errorf("%s: missing [suite] section", path)
	}
	if cfg.Suite.Fixtures == "" {
		return Config{}, fmt.Errorf("%s: suite.fixtures must be set", path)
	}
	if cfg.Suite.Actual == "" {
		return Config{}, fmt.Errorf("%s: suite.actual must be set", path)
	}
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// Discover finds and loads the manifest governing startDir, falling back
// to Default when none exists.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, false, err
	}
	if !ok {
		return Default(), false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// CompareConfig converts the manifest's comparison section into the
// comparator's own configuration type.
func (c Config) CompareConfig() compare.Config {
	return compare.Config{
		Placeholder:            c.Compare.Placeholder,
		PathPrefixes:           c.Compare.PathPrefixes,
		TrimTrailingWhitespace: c.Compare.TrimTrailingWhitespace,
		AllDiffs:               c.Compare.AllDiffs,
	}
}

// FixturesRoot resolves the expected-tree root against the manifest dir.
func (c Config) FixturesRoot() string {
	return c.resolve(c.Suite.Fixtures)
}

// ActualRoot resolves the actual-tree root against the manifest dir.
func (c Config) ActualRoot() string {
	return c.resolve(c.Suite.Actual)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
