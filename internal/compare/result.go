package compare

import "fmt"

// DiffKind classifies one point of divergence between two transcripts.
type DiffKind uint8

const (
	// KindMismatch is a field-level difference between two diagnostics
	// at the same position, or a differing summary/footer line.
	KindMismatch DiffKind = iota
	// KindMissing marks an expected diagnostic absent from the actual
	// transcript.
	KindMissing
	// KindExtra marks an actual diagnostic the expected transcript does
	// not contain.
	KindExtra
	// KindCount marks a summary line whose reported error count does not
	// equal the transcript's error tally.
	KindCount
	// KindMalformed marks an input that is not a well-formed transcript.
	KindMalformed
)

func (k DiffKind) String() string {
	switch k {
	case KindMismatch:
		return "mismatch"
	case KindMissing:
		return "missing diagnostic"
	case KindExtra:
		return "extra diagnostic"
	case KindCount:
		return "count inconsistency"
	case KindMalformed:
		return "malformed transcript"
	}
	return "unknown"
}

// Diff is one recorded divergence. Line is the 1-based line in the
// expected transcript the divergence belongs to (0 when no expected line
// applies, e.g. for extra actual diagnostics).
type Diff struct {
	Kind     DiffKind
	Field    string
	Line     uint32
	Expected string
	Actual   string
}

func (d Diff) String() string {
	switch d.Kind {
	case KindMissing:
		return fmt.Sprintf("%s at line %d: %s", d.Kind, d.Line, d.Expected)
	case KindExtra:
		return fmt.Sprintf("%s: %s", d.Kind, d.Actual)
	case KindMalformed:
		return fmt.Sprintf("%s: %s", d.Kind, d.Actual)
	default:
		return fmt.Sprintf("%s at line %d (%s): expected %q, actual %q",
			d.Kind, d.Line, d.Field, d.Expected, d.Actual)
	}
}

// Result is the outcome of one comparison: a pass, or the ordered list
// of divergences.
type Result struct {
	Diffs []Diff
}

// Pass reports whether the transcripts matched under the configured
// normalization.
func (r Result) Pass() bool {
	return len(r.Diffs) == 0
}
