// Package comparefmt renders comparison results for humans and for CI.
// It owns no policy: the comparison itself lives in internal/compare,
// and callers decide where the output goes.
package comparefmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"goldiff/internal/compare"
)

var (
	failTag  = color.New(color.FgRed, color.Bold)
	passTag  = color.New(color.FgGreen)
	delLine  = color.New(color.FgRed)
	addLine  = color.New(color.FgGreen)
	kindNote = color.New(color.FgYellow)
)

// NamedResult pairs a comparison result with the fixture it belongs to.
type NamedResult struct {
	Name   string
	Result compare.Result
	// Err records a harness-level failure (unreadable file, missing
	// actual output) that prevented the comparison from running.
	Err error
}

// Failed reports whether the fixture counts against the run.
func (r NamedResult) Failed() bool {
	return r.Err != nil || !r.Result.Pass()
}

// Pretty renders one fixture's outcome. Failing fixtures get a unified
// diff style listing: the expected line prefixed with "-", the actual
// with "+", and category findings (count inconsistency, malformed
// transcript) as tagged lines.
func Pretty(w io.Writer, res NamedResult, opts PrettyOpts) {
	if !res.Failed() {
		if opts.ShowPassing {
			fmt.Fprintf(w, "%s %s\n", paint(passTag, opts.Color, "ok  "), res.Name)
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", paint(failTag, opts.Color, "FAIL"), res.Name)
	if res.Err != nil {
		fmt.Fprintf(w, "  %s\n", res.Err)
		return
	}
	for _, d := range res.Result.Diffs {
		prettyDiff(w, d, opts)
	}
}

func prettyDiff(w io.Writer, d compare.Diff, opts PrettyOpts) {
	switch d.Kind {
	case compare.KindCount:
		fmt.Fprintf(w, "  %s: summary reports %s previous errors, transcript has %s\n",
			paint(kindNote, opts.Color, d.Kind.String()), d.Actual, d.Expected)
	case compare.KindMalformed:
		fmt.Fprintf(w, "  %s (%s): %s\n",
			paint(kindNote, opts.Color, d.Kind.String()), d.Field, d.Actual)
	case compare.KindMissing:
		fmt.Fprintf(w, "  %s at line %d:\n", d.Kind, d.Line)
		fmt.Fprintf(w, "    %s\n", paint(delLine, opts.Color, "- "+clip(d.Expected, opts.Width)))
	case compare.KindExtra:
		fmt.Fprintf(w, "  %s:\n", d.Kind)
		fmt.Fprintf(w, "    %s\n", paint(addLine, opts.Color, "+ "+clip(d.Actual, opts.Width)))
	default:
		fmt.Fprintf(w, "  %s at line %d (%s):\n", d.Kind, d.Line, d.Field)
		fmt.Fprintf(w, "    %s\n", paint(delLine, opts.Color, "- "+clip(d.Expected, opts.Width)))
		fmt.Fprintf(w, "    %s\n", paint(addLine, opts.Color, "+ "+clip(d.Actual, opts.Width)))
	}
}

// PrettySummary renders the final tally line of a run.
func PrettySummary(w io.Writer, passed, failed int, opts PrettyOpts) {
	if failed == 0 {
		fmt.Fprintf(w, "%s: %d fixtures\n", paint(passTag, opts.Color, "PASS"), passed)
		return
	}
	fmt.Fprintf(w, "%s: %d passed, %d failed\n", paint(failTag, opts.Color, "FAIL"), passed, failed)
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
