package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goldiff/internal/compare"
	"goldiff/internal/comparefmt"
	"goldiff/internal/harness"
	"goldiff/internal/transcript"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [<expected> <actual>]",
	Short: "Compare actual diagnostics against golden transcripts",
	Long: `Compare freshly produced compiler diagnostics against checked-in golden
transcripts. With no arguments the whole suite from goldiff.toml runs;
with two arguments a single expected/actual file pair is compared.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCheck,
}

func init() {
	addSuiteFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("fail-fast", false, "report only the first mismatch per fixture")
	checkCmd.Flags().Bool("show-passing", false, "also list fixtures that matched")
	checkCmd.Flags().Int("width", 0, "truncate rendered diff lines to width (0=unlimited)")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for parsed transcripts")
	checkCmd.Flags().Int("max-diffs", 0, "cap diffs per fixture in json output (0=unlimited)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("check needs either no arguments or an expected and an actual file")
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	failFast, err := cmd.Flags().GetBool("fail-fast")
	if err != nil {
		return fmt.Errorf("failed to get fail-fast flag: %w", err)
	}
	showPassing, err := cmd.Flags().GetBool("show-passing")
	if err != nil {
		return fmt.Errorf("failed to get show-passing flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	maxDiffs, err := cmd.Flags().GetInt("max-diffs")
	if err != nil {
		return fmt.Errorf("failed to get max-diffs flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	var results []comparefmt.NamedResult
	if len(args) == 2 {
		cfg := compare.DefaultConfig()
		cfg.AllDiffs = !failFast
		results = []comparefmt.NamedResult{comparePair(args[0], args[1], cfg)}
	} else {
		cfg, err := loadSuite(cmd)
		if err != nil {
			return err
		}
		cmpCfg := cfg.CompareConfig()
		if failFast {
			cmpCfg.AllDiffs = false
		}

		enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
		if err != nil {
			return fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
		var cache *harness.Cache
		if enableDiskCache {
			cache, err = harness.OpenCache("goldiff")
			if err != nil {
				return fmt.Errorf("failed to open disk cache: %w", err)
			}
		}

		opts := harnessOptions(cfg, cache)
		opts.Config = cmpCfg
		report, err := harness.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}
		for i := range report.Results {
			r := &report.Results[i]
			results = append(results, comparefmt.NamedResult{Name: r.Rel, Result: r.Result, Err: r.Err})
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	passed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		} else {
			passed++
		}
	}

	if format == "json" {
		err := comparefmt.JSON(out, results, comparefmt.JSONOpts{IncludeDiffs: true, Max: maxDiffs})
		if err != nil {
			return err
		}
	} else {
		popts := comparefmt.PrettyOpts{Color: useColor, Width: width, ShowPassing: showPassing}
		for _, r := range results {
			comparefmt.Pretty(out, r, popts)
		}
		if !quiet {
			comparefmt.PrettySummary(out, passed, failed, popts)
		}
	}

	if failed > 0 {
		// Suppress cobra usage output on fixture failures
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diffs already printed
	}
	return nil
}

// comparePair compares one explicit expected/actual file pair.
func comparePair(expectedPath, actualPath string, cfg compare.Config) comparefmt.NamedResult {
	res := comparefmt.NamedResult{Name: actualPath}

	expected, err := loadFile(expectedPath, "expected")
	if err != nil {
		return withLoadError(res, err, "expected")
	}
	actual, err := loadFile(actualPath, "actual")
	if err != nil {
		return withLoadError(res, err, "actual")
	}
	res.Result = compare.Compare(actual, expected, cfg)
	return res
}

func loadFile(path, role string) (*transcript.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s transcript: %w", role, err)
	}
	return transcript.Parse(path, data)
}

func withLoadError(res comparefmt.NamedResult, err error, role string) comparefmt.NamedResult {
	if errors.Is(err, transcript.ErrMalformed) {
		res.Result = compare.Result{Diffs: []compare.Diff{{
			Kind: compare.KindMalformed, Field: role, Actual: err.Error(),
		}}}
		return res
	}
	res.Err = err
	return res
}
