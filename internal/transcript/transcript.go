package transcript

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks inputs that do not form a well-formed transcript.
// Callers can detect it with errors.Is and report the fixture as corrupted
// rather than mismatching.
var ErrMalformed = errors.New("malformed transcript")

// ErrCountInconsistent marks a transcript whose summary line reports a
// number of previous errors different from its actual error tally. Kept
// separate from ErrMalformed so harnesses can distinguish "compiler
// changed behavior" from "fixture file corrupted".
var ErrCountInconsistent = errors.New("summary count inconsistent")

// Summary is the trailing "error: aborting due to N previous errors" line.
type Summary struct {
	Line  uint32
	Count int
	Text  string
}

// Transcript is the full ordered diagnostic output of one compiler
// invocation: an ordered sequence of Diagnostics, the trailing summary
// line, and an optional footer pointing at further explanation.
//
// Transcripts are fixtures: created once (parsed from a golden file or
// from fresh compiler output) and read-only thereafter.
type Transcript struct {
	Name        string // origin of the data, used in error messages only
	Diagnostics []Diagnostic
	Summary     *Summary
	Footer      string
	FooterLine  uint32
}

// ErrorTally counts the error-severity diagnostics in the transcript.
func (t *Transcript) ErrorTally() int {
	n := 0
	for i := range t.Diagnostics {
		if t.Diagnostics[i].Severity >= SevError {
			n++
		}
	}
	return n
}

// Validate checks structural well-formedness beyond what Parse enforces:
// the transcript must carry at least one diagnostic and the trailing
// summary line. Count consistency is a separate concern, see CheckCount.
func (t *Transcript) Validate() error {
	if t == nil || len(t.Diagnostics) == 0 {
		return fmt.Errorf("%w: no diagnostics", ErrMalformed)
	}
	if t.Summary == nil {
		return fmt.Errorf("%w: summary line missing", ErrMalformed)
	}
	return nil
}

// CheckCount verifies that the summary's reported count equals the number
// of error-severity diagnostics. Requires a validated transcript.
func (t *Transcript) CheckCount() error {
	if t.Summary == nil {
		return fmt.Errorf("%w: summary line missing", ErrMalformed)
	}
	if tally := t.ErrorTally(); t.Summary.Count != tally {
		return fmt.Errorf("%w: summary reports %d previous errors, transcript has %d",
			ErrCountInconsistent, t.Summary.Count, tally)
	}
	return nil
}

// FormatCompact renders the transcript one line per diagnostic in a
// stable "<severity> <code> <path>:<line>:<col> <message>" form. Intended
// for quick inspection; order is the transcript's own emission order.
func (t *Transcript) FormatCompact() string {
	var b strings.Builder
	for i := range t.Diagnostics {
		d := &t.Diagnostics[i]
		code := d.Code
		if code == "" {
			code = "-"
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, code, d.Location, sanitizeMessage(d.Message))
		if i < len(t.Diagnostics)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
