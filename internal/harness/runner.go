// Package harness discovers golden fixtures, pairs each with the actual
// compiler output of the same relative path, and runs the comparisons.
// Each fixture is independent and side-effect-free, so comparisons fan
// out across workers without coordination.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"goldiff/internal/compare"
	"goldiff/internal/transcript"
)

// DefaultExtension identifies golden transcript files.
const DefaultExtension = ".stderr"

// Options configures one harness run.
type Options struct {
	// ExpectedRoot holds the checked-in golden files.
	ExpectedRoot string
	// ActualRoot holds freshly produced compiler output, mirroring the
	// relative layout of ExpectedRoot.
	ActualRoot string
	// Extension filters golden files; DefaultExtension when empty.
	Extension string
	// Jobs caps parallel comparisons, 0 - number of CPUs.
	Jobs int
	// Config is passed through to every comparison.
	Config compare.Config
	// Cache, when set, memoizes parsed transcripts across runs.
	Cache *Cache
}

// FixtureResult is the outcome for one expected/actual pair.
type FixtureResult struct {
	// Rel is the fixture path relative to ExpectedRoot.
	Rel      string
	Expected string
	Actual   string
	Result   compare.Result
	// Err records failures outside the comparison itself, such as a
	// missing or unreadable actual output file.
	Err error
}

// Failed reports whether the fixture counts against the run.
func (r *FixtureResult) Failed() bool {
	return r.Err != nil || !r.Result.Pass()
}

// Report aggregates a whole run. Results keep the sorted fixture order.
type Report struct {
	Results []FixtureResult
	Passed  int
	Failed  int
}

// Run compares every golden file under ExpectedRoot against its actual
// counterpart. Individual fixture failures never abort the run; only
// fixture discovery errors and context cancellation do.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	rels, err := listFixtures(opts.ExpectedRoot, opts.Extension)
	if err != nil {
		return nil, err
	}

	results := make([]FixtureResult, len(rels))
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, rel := range rels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runOne(rel, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	for i := range results {
		if results[i].Failed() {
			report.Failed++
		} else {
			report.Passed++
		}
	}
	return report, nil
}

func runOne(rel string, opts Options) FixtureResult {
	res := FixtureResult{
		Rel:      rel,
		Expected: filepath.Join(opts.ExpectedRoot, rel),
		Actual:   filepath.Join(opts.ActualRoot, rel),
	}

	expected, expErr := loadTranscript(res.Expected, opts.Cache)
	actual, actErr := loadTranscript(res.Actual, opts.Cache)

	// Parse failures are reported as malformed-transcript results so the
	// harness still produces a per-fixture report; only missing files are
	// harness-level errors.
	switch {
	case expErr != nil && !errors.Is(expErr, transcript.ErrMalformed):
		res.Err = fmt.Errorf("expected transcript: %w", expErr)
		return res
	case actErr != nil && !errors.Is(actErr, transcript.ErrMalformed):
		res.Err = fmt.Errorf("actual output: %w", actErr)
		return res
	}
	if expErr != nil {
		res.Result.Diffs = append(res.Result.Diffs, compare.Diff{
			Kind: compare.KindMalformed, Field: "expected", Actual: expErr.Error(),
		})
	}
	if actErr != nil {
		res.Result.Diffs = append(res.Result.Diffs, compare.Diff{
			Kind: compare.KindMalformed, Field: "actual", Actual: actErr.Error(),
		})
	}
	if len(res.Result.Diffs) > 0 {
		return res
	}

	res.Result = compare.Compare(actual, expected, opts.Config)
	return res
}

func loadTranscript(path string, cache *Cache) (*transcript.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		key := CacheKey(data)
		if t, ok, err := cache.Get(key); err == nil && ok {
			return t, nil
		}
		t, err := transcript.Parse(path, data)
		if err != nil {
			return nil, err
		}
		// Cache write failures are not worth failing the fixture over.
		_ = cache.Put(key, t)
		return t, nil
	}
	return transcript.Parse(path, data)
}

// listFixtures returns the sorted relative paths of all golden files
// under root.
func listFixtures(root, ext string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)
	return rels, nil
}
