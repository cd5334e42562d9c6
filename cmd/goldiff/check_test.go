package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goldiff/internal/compare"
)

const pairFixture = `error[E0521]: borrowed data escapes outside of function
  --> $DIR/issue-53092-2.rs:94:5
   |
LL |     move |_| *x
   |     ^^^^^^^^^^^ ` + "`x`" + ` escapes the function body here

error: aborting due to 1 previous error
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestComparePair(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "expected.stderr", pairFixture)
	actual := writeFile(t, dir, "actual.stderr", pairFixture)

	res := comparePair(expected, actual, compare.DefaultConfig())
	if res.Failed() {
		t.Fatalf("identical pair should pass: %+v", res)
	}

	mutated := strings.Replace(pairFixture, ":94:5", ":95:5", 1)
	actual = writeFile(t, dir, "mutated.stderr", mutated)
	res = comparePair(expected, actual, compare.DefaultConfig())
	if !res.Failed() {
		t.Fatal("mutated pair should fail")
	}
	if len(res.Result.Diffs) != 1 || res.Result.Diffs[0].Field != "location" {
		t.Errorf("diffs = %v", res.Result.Diffs)
	}
}

func TestComparePairMalformedExpected(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "expected.stderr", "garbage, not a transcript\n")
	actual := writeFile(t, dir, "actual.stderr", pairFixture)

	res := comparePair(expected, actual, compare.DefaultConfig())
	if res.Err != nil {
		t.Fatalf("malformed fixture should not be a harness error: %v", res.Err)
	}
	if len(res.Result.Diffs) != 1 || res.Result.Diffs[0].Kind != compare.KindMalformed {
		t.Fatalf("diffs = %v", res.Result.Diffs)
	}
	if res.Result.Diffs[0].Field != "expected" {
		t.Errorf("side = %q, want expected", res.Result.Diffs[0].Field)
	}
}

func TestComparePairMissingActual(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "expected.stderr", pairFixture)

	res := comparePair(expected, filepath.Join(dir, "nope.stderr"), compare.DefaultConfig())
	if res.Err == nil {
		t.Fatal("missing actual file should surface as a harness error")
	}
}
