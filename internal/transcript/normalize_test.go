package transcript

import (
	"reflect"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	n := NewNormalizer(NormalizeOptions{
		PathPrefixes: []string{"/home/ci/checkout/tests"},
	})

	cases := []struct {
		in   string
		want string
	}{
		{"$DIR/issue-53092-2.rs", "$DIR/issue-53092-2.rs"},
		{"./tests/ui/foo.rs", "tests/ui/foo.rs"},
		{"/home/ci/checkout/tests/ui/foo.rs", "$DIR/ui/foo.rs"},
		{"/home/ci/checkout/tests", "$DIR"},
		{"/somewhere/else/bar.rs", "$DIR/bar.rs"},
		{"relative/path.rs", "relative/path.rs"},
	}
	for _, tc := range cases {
		if got := n.Path(tc.in); got != tc.want {
			t.Errorf("Path(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	n := NewNormalizer(NormalizeOptions{
		PathPrefixes: []string{"/home/ci/checkout/tests"},
	})
	inputs := []string{
		"/home/ci/checkout/tests/ui/foo.rs",
		"./ui/foo.rs",
		"/absolute/elsewhere.rs",
		"plain.rs",
	}
	for _, in := range inputs {
		once := n.Path(in)
		if twice := n.Path(once); twice != once {
			t.Errorf("Path not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeTranscriptIdempotent(t *testing.T) {
	tr, err := Parse("fixture", loadFixture(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := NewNormalizer(NormalizeOptions{TrimTrailingWhitespace: true})

	once := n.Transcript(tr)
	twice := n.Transcript(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("normalizing a normalized transcript changed it")
	}
}

func TestNormalizeTrimsTrailingWhitespace(t *testing.T) {
	input := "error[E0521]: borrowed data escapes outside of function   \n" +
		"  --> $DIR/a.rs:1:1\n" +
		"   |\t\n" +
		"LL | fn f() {}\n" +
		"\n" +
		"error: aborting due to 1 previous error\n"

	tr, err := Parse("ws", []byte(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := NewNormalizer(NormalizeOptions{TrimTrailingWhitespace: true})
	got := n.Transcript(tr)

	if got.Diagnostics[0].Message != "borrowed data escapes outside of function" {
		t.Errorf("message = %q", got.Diagnostics[0].Message)
	}
	if got.Diagnostics[0].Annotations[0].Text != "   |" {
		t.Errorf("annotation = %q", got.Diagnostics[0].Annotations[0].Text)
	}
	// The input transcript is left untouched.
	if tr.Diagnostics[0].Annotations[0].Text != "   |\t" {
		t.Errorf("input mutated: %q", tr.Diagnostics[0].Annotations[0].Text)
	}
}
