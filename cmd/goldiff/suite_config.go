package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"goldiff/internal/harness"
	"goldiff/internal/suite"
)

// loadSuite resolves the suite configuration for a command: an explicit
// --config path wins, otherwise goldiff.toml is discovered upward from
// the working directory, otherwise defaults apply. Command flags overlay
// the manifest values afterwards.
func loadSuite(cmd *cobra.Command) (suite.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return suite.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg suite.Config
	if configPath != "" {
		cfg, err = suite.Load(configPath)
		if err != nil {
			return suite.Config{}, err
		}
	} else {
		cfg, _, err = suite.Discover(".")
		if err != nil {
			return suite.Config{}, err
		}
	}

	// Flag paths are relative to the working directory, not the manifest,
	// so they are anchored before the manifest-relative resolution runs.
	if v, err := cmd.Flags().GetString("fixtures"); err == nil && v != "" {
		cfg.Suite.Fixtures = absPath(v)
	}
	if v, err := cmd.Flags().GetString("actual"); err == nil && v != "" {
		cfg.Suite.Actual = absPath(v)
	}
	if v, err := cmd.Flags().GetString("ext"); err == nil && v != "" {
		cfg.Suite.Extension = v
	}
	if v, err := cmd.Root().PersistentFlags().GetInt("jobs"); err == nil && v > 0 {
		cfg.Run.Jobs = v
	}
	return cfg, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// addSuiteFlags registers the flags shared by the suite-driven commands.
func addSuiteFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to goldiff.toml (default: discovered upward)")
	cmd.Flags().String("fixtures", "", "root of golden transcript files (overrides manifest)")
	cmd.Flags().String("actual", "", "root of freshly produced compiler output (overrides manifest)")
	cmd.Flags().String("ext", "", "golden file extension (overrides manifest)")
}

// harnessOptions assembles runner options from the resolved config.
func harnessOptions(cfg suite.Config, cache *harness.Cache) harness.Options {
	return harness.Options{
		ExpectedRoot: cfg.FixturesRoot(),
		ActualRoot:   cfg.ActualRoot(),
		Extension:    cfg.Suite.Extension,
		Jobs:         cfg.Run.Jobs,
		Config:       cfg.CompareConfig(),
		Cache:        cache,
	}
}
