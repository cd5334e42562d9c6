package comparefmt

import (
	"encoding/json"
	"io"
)

// DiffJSON is one divergence in JSON form.
type DiffJSON struct {
	Kind     string `json:"kind"`
	Field    string `json:"field,omitempty"`
	Line     uint32 `json:"line,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// FixtureJSON is one fixture's outcome in JSON form.
type FixtureJSON struct {
	Name  string     `json:"name"`
	Pass  bool       `json:"pass"`
	Error string     `json:"error,omitempty"`
	Diffs []DiffJSON `json:"diffs,omitempty"`
}

// ReportJSON is the root structure of the JSON output.
type ReportJSON struct {
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Fixtures []FixtureJSON `json:"fixtures"`
}

// JSON writes the whole run as one indented JSON document, suitable for
// CI consumption.
func JSON(w io.Writer, results []NamedResult, opts JSONOpts) error {
	report := ReportJSON{Fixtures: make([]FixtureJSON, 0, len(results))}
	for _, r := range results {
		f := FixtureJSON{Name: r.Name, Pass: !r.Failed()}
		if f.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		if opts.IncludeDiffs {
			for i, d := range r.Result.Diffs {
				if opts.Max > 0 && i >= opts.Max {
					break
				}
				f.Diffs = append(f.Diffs, DiffJSON{
					Kind:     d.Kind.String(),
					Field:    d.Field,
					Line:     d.Line,
					Expected: d.Expected,
					Actual:   d.Actual,
				})
			}
		}
		report.Fixtures = append(report.Fixtures, f)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
