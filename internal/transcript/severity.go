package transcript

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote is for secondary, informational diagnostics.
	SevNote Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity maps a rendered severity keyword back to its enum value.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "note":
		return SevNote, nil
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}
