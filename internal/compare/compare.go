// Package compare implements the golden-diagnostic comparison: given a
// freshly produced transcript and a checked-in expected one, decide
// whether they match under a normalization policy and report structured
// diffs when they do not.
//
// Compare is a pure function: no I/O, no shared state, no panics. A
// surrounding harness can run many comparisons concurrently across
// independent fixtures without coordination.
package compare

import (
	"strconv"

	"goldiff/internal/transcript"
)

// Config controls normalization and diff reporting.
type Config struct {
	// Placeholder substitutes stripped path prefixes in locations;
	// transcript.DefaultPlaceholder when empty.
	Placeholder string
	// PathPrefixes lists filesystem prefixes replaced by Placeholder, so
	// fixtures stay portable across checkout locations.
	PathPrefixes []string
	// TrimTrailingWhitespace drops trailing spaces and tabs per line
	// before comparing.
	TrimTrailingWhitespace bool
	// AllDiffs reports every divergence instead of stopping at the first
	// mismatch. Count and malformedness findings are always reported.
	AllDiffs bool
}

// DefaultConfig matches the conventions of checked-in golden files:
// trailing whitespace is insignificant and every divergence is reported.
func DefaultConfig() Config {
	return Config{
		Placeholder:            transcript.DefaultPlaceholder,
		TrimTrailingWhitespace: true,
		AllDiffs:               true,
	}
}

func (c Config) normalizer() *transcript.Normalizer {
	return transcript.NewNormalizer(transcript.NormalizeOptions{
		Placeholder:            c.Placeholder,
		PathPrefixes:           c.PathPrefixes,
		TrimTrailingWhitespace: c.TrimTrailingWhitespace,
	})
}

// Compare checks an actual transcript against the expected golden one.
//
// Both inputs are normalized first; diagnostics are then compared
// element-by-element in order. Two diagnostics match iff severity, code,
// message, normalized location, all snippet annotations (order
// significant) and all notes are equal. The summary and footer lines are
// compared textually. The summary count check runs
// regardless of per-diagnostic mismatches and is reported as its own
// category, as is a structurally malformed input.
func Compare(actual, expected *transcript.Transcript, cfg Config) Result {
	var res Result

	if bad := malformedDiffs(expected, "expected"); bad != nil {
		res.Diffs = append(res.Diffs, bad...)
	}
	if bad := malformedDiffs(actual, "actual"); bad != nil {
		res.Diffs = append(res.Diffs, bad...)
	}
	if len(res.Diffs) > 0 {
		return res
	}

	n := cfg.normalizer()
	a := n.Transcript(actual)
	e := n.Transcript(expected)

	var mismatches []Diff
	common := min(len(a.Diagnostics), len(e.Diagnostics))
	for i := 0; i < common; i++ {
		mismatches = append(mismatches, diffDiagnostic(&a.Diagnostics[i], &e.Diagnostics[i])...)
	}
	for i := common; i < len(e.Diagnostics); i++ {
		d := &e.Diagnostics[i]
		mismatches = append(mismatches, Diff{
			Kind:     KindMissing,
			Field:    "diagnostic",
			Line:     d.StartLine,
			Expected: d.Header(),
		})
	}
	for i := common; i < len(a.Diagnostics); i++ {
		d := &a.Diagnostics[i]
		mismatches = append(mismatches, Diff{
			Kind:   KindExtra,
			Field:  "diagnostic",
			Actual: d.Header(),
		})
	}
	if sd, ok := diffSummary(a, e); ok {
		mismatches = append(mismatches, sd)
	}
	if fd, ok := diffFooter(a, e); ok {
		mismatches = append(mismatches, fd)
	}
	if !cfg.AllDiffs && len(mismatches) > 1 {
		mismatches = mismatches[:1]
	}
	res.Diffs = append(res.Diffs, mismatches...)

	// The actual summary must agree with the actual error tally even
	// when every diagnostic matches positionally.
	if a.Summary != nil {
		if tally := a.ErrorTally(); a.Summary.Count != tally {
			res.Diffs = append(res.Diffs, Diff{
				Kind:     KindCount,
				Field:    "summary count",
				Line:     summaryLine(e),
				Expected: strconv.Itoa(tally),
				Actual:   strconv.Itoa(a.Summary.Count),
			})
		}
	}
	return res
}

func malformedDiffs(t *transcript.Transcript, role string) []Diff {
	if t == nil {
		return []Diff{{Kind: KindMalformed, Field: role, Actual: "transcript is absent"}}
	}
	if err := t.Validate(); err != nil {
		return []Diff{{Kind: KindMalformed, Field: role, Actual: err.Error()}}
	}
	return nil
}

func diffDiagnostic(a, e *transcript.Diagnostic) []Diff {
	var out []Diff
	add := func(field, expected, actual string, line uint32) {
		if expected != actual {
			out = append(out, Diff{Kind: KindMismatch, Field: field, Line: line, Expected: expected, Actual: actual})
		}
	}

	add("severity", e.Severity.String(), a.Severity.String(), e.StartLine)
	add("code", e.Code, a.Code, e.StartLine)
	add("message", e.Message, a.Message, e.StartLine)
	add("location", e.Location.String(), a.Location.String(), e.StartLine+1)

	common := min(len(a.Annotations), len(e.Annotations))
	for i := 0; i < common; i++ {
		add("annotation", e.Annotations[i].Text, a.Annotations[i].Text, e.Annotations[i].Line)
	}
	for i := common; i < len(e.Annotations); i++ {
		out = append(out, Diff{Kind: KindMismatch, Field: "annotation", Line: e.Annotations[i].Line, Expected: e.Annotations[i].Text})
	}
	for i := common; i < len(a.Annotations); i++ {
		out = append(out, Diff{Kind: KindMismatch, Field: "annotation", Line: lastAnnotationLine(e), Actual: a.Annotations[i].Text})
	}

	common = min(len(a.Notes), len(e.Notes))
	for i := 0; i < common; i++ {
		add("note", e.Notes[i].Text, a.Notes[i].Text, e.Notes[i].Line)
	}
	for i := common; i < len(e.Notes); i++ {
		out = append(out, Diff{Kind: KindMismatch, Field: "note", Line: e.Notes[i].Line, Expected: e.Notes[i].Text})
	}
	for i := common; i < len(a.Notes); i++ {
		out = append(out, Diff{Kind: KindMismatch, Field: "note", Line: lastAnnotationLine(e), Actual: a.Notes[i].Text})
	}
	return out
}

func diffSummary(a, e *transcript.Transcript) (Diff, bool) {
	if a.Summary.Text != e.Summary.Text {
		return Diff{
			Kind:     KindMismatch,
			Field:    "summary",
			Line:     e.Summary.Line,
			Expected: e.Summary.Text,
			Actual:   a.Summary.Text,
		}, true
	}
	return Diff{}, false
}

func diffFooter(a, e *transcript.Transcript) (Diff, bool) {
	if a.Footer != e.Footer {
		line := e.FooterLine
		if line == 0 {
			line = a.FooterLine
		}
		return Diff{
			Kind:     KindMismatch,
			Field:    "footer",
			Line:     line,
			Expected: e.Footer,
			Actual:   a.Footer,
		}, true
	}
	return Diff{}, false
}

func lastAnnotationLine(d *transcript.Diagnostic) uint32 {
	if n := len(d.Annotations); n > 0 {
		return d.Annotations[n-1].Line
	}
	return d.StartLine
}

func summaryLine(t *transcript.Transcript) uint32 {
	if t.Summary != nil {
		return t.Summary.Line
	}
	return 0
}
