package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const manifest = `[suite]
name = "ui"
fixtures = "tests/ui"
actual = "build/ui"
extension = ".stderr"

[compare]
placeholder = "$DIR"
path_prefixes = ["/home/ci/checkout/tests/ui"]
trim_trailing_whitespace = true
all_diffs = true

[run]
jobs = 4
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, manifest)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Suite.Name != "ui" {
		t.Errorf("name = %q", cfg.Suite.Name)
	}
	if got := cfg.FixturesRoot(); got != filepath.Join(dir, "tests", "ui") {
		t.Errorf("fixtures root = %q", got)
	}
	if got := cfg.ActualRoot(); got != filepath.Join(dir, "build", "ui") {
		t.Errorf("actual root = %q", got)
	}
	cc := cfg.CompareConfig()
	if cc.Placeholder != "$DIR" || !cc.TrimTrailingWhitespace || !cc.AllDiffs {
		t.Errorf("compare config = %+v", cc)
	}
	if len(cc.PathPrefixes) != 1 {
		t.Errorf("path prefixes = %v", cc.PathPrefixes)
	}
	if cfg.Run.Jobs != 4 {
		t.Errorf("jobs = %d", cfg.Run.Jobs)
	}
}

func TestLoadRejectsIncomplete(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no suite section", "[compare]\nall_diffs = true\n", "missing [suite] section"},
		{"no fixtures", "[suite]\nactual = \"build\"\nfixtures = \"\"\n", "suite.fixtures"},
		{"no actual", "[suite]\nfixtures = \"tests\"\nactual = \"\"\n", "suite.actual"},
		{"bad toml", "[suite\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, dir, tc.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, manifest)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, found, err := Discover(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if !found {
		t.Fatal("manifest not found from nested directory")
	}
	if cfg.Suite.Name != "ui" {
		t.Errorf("name = %q", cfg.Suite.Name)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	cfg, found, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if found {
		t.Fatal("no manifest should be found in an empty tree")
	}
	def := Default()
	if cfg.Suite.Fixtures != def.Suite.Fixtures || cfg.Suite.Extension != def.Suite.Extension {
		t.Errorf("cfg = %+v, want defaults", cfg.Suite)
	}
	if !cfg.Compare.TrimTrailingWhitespace || !cfg.Compare.AllDiffs {
		t.Errorf("compare defaults = %+v", cfg.Compare)
	}
}
