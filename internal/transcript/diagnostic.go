package transcript

import "fmt"

// Location is the primary source position a diagnostic points at,
// as printed on the "-->" line of a rendered block.
type Location struct {
	Path   string
	Line   uint32
	Column uint32
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
}

// Annotation is one rendered line of a diagnostic's snippet body: gutter
// lines, source excerpts, caret markers and their labels. Text keeps the
// line verbatim; Line is the 1-based position within the transcript.
type Annotation struct {
	Line uint32
	Text string
}

// Note is one trailing "= note:" / "= help:" line of a diagnostic block.
type Note struct {
	Line uint32
	Text string
}

// Diagnostic is one reported compiler message parsed from a rendered
// transcript. Immutable once produced by Parse.
type Diagnostic struct {
	Severity    Severity
	Code        string // e.g. "E0521"; empty when the header carries none
	Message     string
	Location    Location
	Annotations []Annotation
	Notes       []Note

	// StartLine is the 1-based transcript line of the header.
	StartLine uint32
}

// Header renders the diagnostic's first line in its canonical form.
func (d *Diagnostic) Header() string {
	if d.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}
