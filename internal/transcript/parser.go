package transcript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

var (
	headerRe   = regexp.MustCompile(`^(error|warning|note)(?:\[([A-Za-z0-9]+)\])?: (.*)$`)
	summaryRe  = regexp.MustCompile(`^aborting due to (\d+) previous errors?(?:;.*)?\s*$`)
	locationRe = regexp.MustCompile(`^\s*--> (.+):(\d+):(\d+)\s*$`)
)

const footerPrefix = "For more information about"

// Parse reads a rendered diagnostic transcript into its structured form.
//
// The expected shape is a sequence of diagnostic blocks (header line,
// "-->" location line, indented snippet body, optional "= note:" lines),
// followed by the aborting summary and an optional explanation footer.
// Blocks are separated by blank lines; header lines start at column zero.
//
// Parse never panics. Inputs that cannot be read into this shape return
// an error wrapping ErrMalformed so the harness can report the fixture
// as corrupted instead of mismatching. A transcript without a summary
// line still parses; Validate flags it afterwards.
func Parse(name string, data []byte) (*Transcript, error) {
	lines := strings.Split(string(data), "\n")
	t := &Transcript{Name: name}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		if strings.HasPrefix(line, footerPrefix) {
			ln, err := lineno(i)
			if err != nil {
				return nil, err
			}
			t.Footer = line
			t.FooterLine = ln
			i++
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%s:%d: %w: unrecognized line %q", name, i+1, ErrMalformed, line)
		}
		sev, err := ParseSeverity(m[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", name, i+1, ErrMalformed, err)
		}

		if sm := summaryRe.FindStringSubmatch(m[3]); sev == SevError && m[2] == "" && sm != nil {
			if t.Summary != nil {
				return nil, fmt.Errorf("%s:%d: %w: duplicate summary line", name, i+1, ErrMalformed)
			}
			count, err := strconv.Atoi(sm[1])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w: bad summary count: %v", name, i+1, ErrMalformed, err)
			}
			ln, err := lineno(i)
			if err != nil {
				return nil, err
			}
			t.Summary = &Summary{Line: ln, Count: count, Text: line}
			i++
			continue
		}

		d, next, err := parseBlock(name, lines, i, sev, m[2], m[3])
		if err != nil {
			return nil, err
		}
		t.Diagnostics = append(t.Diagnostics, *d)
		i = next
	}

	if len(t.Diagnostics) == 0 && t.Summary == nil {
		return nil, fmt.Errorf("%s: %w: no diagnostics", name, ErrMalformed)
	}
	return t, nil
}

// parseBlock consumes one diagnostic block starting at the header line
// and returns the index of the first line after it.
func parseBlock(name string, lines []string, start int, sev Severity, code, msg string) (*Diagnostic, int, error) {
	startLn, err := lineno(start)
	if err != nil {
		return nil, 0, err
	}
	d := &Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   msg,
		StartLine: startLn,
	}

	i := start + 1
	if i >= len(lines) {
		return nil, 0, fmt.Errorf("%s:%d: %w: diagnostic has no location line", name, start+1, ErrMalformed)
	}
	lm := locationRe.FindStringSubmatch(lines[i])
	if lm == nil {
		return nil, 0, fmt.Errorf("%s:%d: %w: expected \"--> path:line:col\", got %q", name, i+1, ErrMalformed, lines[i])
	}
	srcLine, err := parseU32(name, i, lm[2])
	if err != nil {
		return nil, 0, err
	}
	srcCol, err := parseU32(name, i, lm[3])
	if err != nil {
		return nil, 0, err
	}
	d.Location = Location{Path: lm[1], Line: srcLine, Column: srcCol}
	i++

	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			break
		}
		// Header lines start at column zero; body lines are indented.
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "LL") {
			break
		}
		ln, err := lineno(i)
		if err != nil {
			return nil, 0, err
		}
		if strings.HasPrefix(strings.TrimSpace(line), "= ") {
			d.Notes = append(d.Notes, Note{Line: ln, Text: line})
		} else {
			d.Annotations = append(d.Annotations, Annotation{Line: ln, Text: line})
		}
		i++
	}
	return d, i, nil
}

func parseU32(name string, idx int, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: %w: bad number %q: %v", name, idx+1, ErrMalformed, s, err)
	}
	return safecast.Conv[uint32](v)
}

func lineno(idx int) (uint32, error) {
	return safecast.Conv[uint32](idx + 1)
}
