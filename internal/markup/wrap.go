package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrInvalidArgument is returned for a non-positive wrap width.
var ErrInvalidArgument = errors.New("invalid argument")

var alignOpenTags = []string{"<center>", "<right>", "<left>"}

// HasAlignTag reports whether line contains an alignment open tag. Such
// lines are never wrapped.
func HasAlignTag(line string) bool {
	for _, t := range alignOpenTags {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}

// VisibleLen counts the runes of line that sit outside <...> delimiters.
// An unterminated '<' hides the rest of the line.
func VisibleLen(line string) int {
	n := 0
	for i := 0; i < len(line); {
		if line[i] == '<' {
			end := strings.IndexByte(line[i:], '>')
			if end < 0 {
				break
			}
			i += end + 1
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
		n++
	}
	return n
}

// Wrap breaks every line of text so that it holds at most width visible
// characters. A line is flushed as soon as it is full; tags are copied
// verbatim and never split, so a tag that follows a full line opens the next
// one. Continuation lines lose their leading whitespace (which still counted
// toward the line it was read into) and lines left with no text are dropped.
// Lines holding an alignment tag are left untouched.
func Wrap(text string, width int) (string, error) {
	if width <= 0 {
		return "", errors.WithHint(
			errors.Wrapf(ErrInvalidArgument, "paper width must be positive, got %d", width),
			"typical thermal printers use 32 to 80 characters per line")
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n"), nil
}

func wrapLine(line string, width int) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}
	if HasAlignTag(line) {
		return []string{line}
	}

	var (
		out       []string
		seg       strings.Builder
		visible   int
		continued bool
	)
	flush := func() {
		s := seg.String()
		if continued {
			s = trimLeadingSpace(s)
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
		seg.Reset()
		visible = 0
		continued = true
	}

	for i := 0; i < len(line); {
		if line[i] == '<' {
			end := strings.IndexByte(line[i:], '>')
			if end < 0 {
				seg.WriteString(line[i:])
				break
			}
			seg.WriteString(line[i : i+end+1])
			i += end + 1
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		seg.WriteString(line[i : i+size])
		i += size
		visible++
		if visible == width {
			flush()
		}
	}
	flush()
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// trimLeadingSpace drops whitespace before the first visible character of s,
// keeping any tags in front of it.
func trimLeadingSpace(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteString(s[i : i+end+1])
			i += end + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			b.WriteString(s[i:])
			return b.String()
		}
		i += size
	}
	return b.String()
}
