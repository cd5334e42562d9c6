package comparefmt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONReport(t *testing.T) {
	results := []NamedResult{
		{Name: "ui/ok.stderr"},
		{Name: "ui/bad.stderr", Result: failResult()},
	}

	var b strings.Builder
	if err := JSON(&b, results, JSONOpts{IncludeDiffs: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var report ReportJSON
	if err := json.Unmarshal([]byte(b.String()), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Passed != 1 || report.Failed != 1 {
		t.Errorf("tally = %d/%d, want 1/1", report.Passed, report.Failed)
	}
	if len(report.Fixtures) != 2 {
		t.Fatalf("fixtures = %d", len(report.Fixtures))
	}
	bad := report.Fixtures[1]
	if bad.Pass || len(bad.Diffs) != 2 {
		t.Fatalf("bad fixture = %+v", bad)
	}
	if bad.Diffs[0].Kind != "mismatch" || bad.Diffs[0].Line != 28 {
		t.Errorf("diff = %+v", bad.Diffs[0])
	}
	if bad.Diffs[1].Kind != "count inconsistency" {
		t.Errorf("diff = %+v", bad.Diffs[1])
	}
}

func TestJSONMaxDiffs(t *testing.T) {
	var b strings.Builder
	err := JSON(&b, []NamedResult{{Name: "ui/bad.stderr", Result: failResult()}}, JSONOpts{IncludeDiffs: true, Max: 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var report ReportJSON
	if err := json.Unmarshal([]byte(b.String()), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := len(report.Fixtures[0].Diffs); got != 1 {
		t.Errorf("diffs = %d, want 1", got)
	}
}

func TestJSONOmitsDiffsWhenDisabled(t *testing.T) {
	var b strings.Builder
	if err := JSON(&b, []NamedResult{{Name: "ui/bad.stderr", Result: failResult()}}, JSONOpts{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(b.String(), "issue-53092-2.rs") {
		t.Errorf("diff payload leaked: %s", b.String())
	}
}
