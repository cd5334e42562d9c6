package transcript

import (
	"path/filepath"
	"strings"
)

// DefaultPlaceholder replaces filesystem-dependent path prefixes so that
// golden files stay portable across checkout locations.
const DefaultPlaceholder = "$DIR"

// NormalizeOptions controls how transcripts are canonicalized before
// comparison.
type NormalizeOptions struct {
	// Placeholder substitutes stripped path prefixes; DefaultPlaceholder
	// when empty.
	Placeholder string
	// PathPrefixes lists filesystem prefixes to replace with Placeholder.
	PathPrefixes []string
	// TrimTrailingWhitespace drops trailing spaces and tabs per line.
	TrimTrailingWhitespace bool
}

// Normalizer rewrites transcripts into a canonical, location-independent
// form. Normalization is idempotent: applying it to an already-normalized
// transcript yields the same transcript.
type Normalizer struct {
	opts NormalizeOptions
}

func NewNormalizer(opts NormalizeOptions) *Normalizer {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	return &Normalizer{opts: opts}
}

// Path canonicalizes one file path: forward slashes, no "./" prefix, and
// any configured (or absolute) prefix replaced by the placeholder token.
func (n *Normalizer) Path(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	ph := n.opts.Placeholder
	if p == ph || strings.HasPrefix(p, ph+"/") {
		return p
	}
	for _, pre := range n.opts.PathPrefixes {
		pre = strings.TrimRight(filepath.ToSlash(pre), "/")
		if pre == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(p, pre+"/"); ok {
			return ph + "/" + rest
		}
		if p == pre {
			return ph
		}
	}
	if isAbs(p) {
		return ph + "/" + base(p)
	}
	return p
}

// Transcript returns a normalized copy; the input is left untouched.
func (n *Normalizer) Transcript(t *Transcript) *Transcript {
	if t == nil {
		return nil
	}
	out := &Transcript{
		Name:       t.Name,
		Footer:     n.line(t.Footer),
		FooterLine: t.FooterLine,
	}
	if t.Summary != nil {
		s := *t.Summary
		s.Text = n.line(s.Text)
		out.Summary = &s
	}
	out.Diagnostics = make([]Diagnostic, len(t.Diagnostics))
	for i := range t.Diagnostics {
		d := t.Diagnostics[i]
		d.Message = n.line(d.Message)
		d.Location.Path = n.Path(d.Location.Path)
		d.Annotations = append([]Annotation(nil), d.Annotations...)
		for j := range d.Annotations {
			d.Annotations[j].Text = n.line(d.Annotations[j].Text)
		}
		d.Notes = append([]Note(nil), d.Notes...)
		for j := range d.Notes {
			d.Notes[j].Text = n.line(d.Notes[j].Text)
		}
		out.Diagnostics[i] = d
	}
	return out
}

func (n *Normalizer) line(s string) string {
	if n.opts.TrimTrailingWhitespace {
		return strings.TrimRight(s, " \t")
	}
	return s
}

func isAbs(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	// Windows drive paths survive ToSlash as "C:/...".
	return len(p) > 2 && p[1] == ':' && p[2] == '/'
}

func base(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}
