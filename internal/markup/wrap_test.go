package markup

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapExamples(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"splits and drops leading space", "aaaaaaaaaa bbbb", 10, "aaaaaaaaaa\nbbbb"},
		{"short line untouched", "hello", 10, "hello"},
		{"whitespace-only line emptied", "   \t", 10, ""},
		{"empty input", "", 10, ""},
		{"keeps existing newlines", "ab\n\ncd", 10, "ab\n\ncd"},
		{"hard split inside a word", "abcdefghijkl", 5, "abcde\nfghij\nkl"},
		{"tags are zero width", "<bold>abcde</bold>fgh", 5, "<bold>abcde\n</bold>fgh"},
		{"alignment line exempt", "<center>" + strings.Repeat("x", 20) + "</center>", 5, "<center>" + strings.Repeat("x", 20) + "</center>"},
		{"right alignment exempt", "<right>abcdefgh</right>", 3, "<right>abcdefgh</right>"},
		{"unterminated tag copied verbatim", "ab<bold cd", 10, "ab<bold cd"},
		{"unknown tags copied verbatim", "a<3>b", 10, "a<3>b"},
		{"multibyte runes count once", "££££££", 3, "£££\n£££"},
		{"whitespace-only continuation dropped", "aaaaa     ", 5, "aaaaa"},
		{"indent filling the width dropped", "     x", 5, "x"},
		{"standalone tags", "<divider>", 4, "<divider>"},
		{"stripped space still counts", "aaaaaaaaaa bbbbbbbbbb", 10, "aaaaaaaaaa\nbbbbbbbbb\nb"},
		{"tag after a full line opens the next", "aaaaaaaaaa<bold>bb</bold>", 10, "aaaaaaaaaa\n<bold>bb</bold>"},
		{"closing tag after a full line", "<bold>aaaaaaaaaa</bold>", 10, "<bold>aaaaaaaaaa\n</bold>"},
		{"space after leading tags stripped", "aaaaa<bold> bb</bold>", 5, "aaaaa\n<bold>bb</bold>"},
		{"first line keeps its indent", "  abcdef", 4, "  ab\ncdef"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Wrap(tc.in, tc.width)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrapRejectsNonPositiveWidth(t *testing.T) {
	for _, w := range []int{0, -1, -48} {
		_, err := Wrap("text", w)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "width %d: %v", w, err)
	}
}

func TestWrapWidthBound(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog and keeps on running far away",
		"<bold>Bold words</bold> mixed with <large>large ones</large> and plain text too",
		"<bold><large>Shopping list</large></bold> eggs, milk, bread, butter, cheese, apples",
		"a <cut> b <divider> c " + strings.Repeat("z", 40),
	}
	for _, in := range inputs {
		for _, w := range []int{1, 3, 7, 10, 32, 48} {
			got, err := Wrap(in, w)
			require.NoError(t, err)
			for _, line := range strings.Split(got, "\n") {
				if HasAlignTag(line) {
					continue
				}
				assert.LessOrEqual(t, VisibleLen(line), w, "width %d line %q", w, line)
			}
		}
	}
}

func TestWrapIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"aaaaaaaaaa bbbb",
		"The quick brown fox jumps over the lazy dog",
		"  indented line that is long enough to wrap around",
		"one\n\ntwo   three    four     five",
		"trailing spaces        ",
	}
	for _, in := range inputs {
		for _, w := range []int{1, 4, 10, 48} {
			once, err := Wrap(in, w)
			require.NoError(t, err)
			twice, err := Wrap(once, w)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "width %d input %q", w, in)
		}
	}
}

func TestWrapNeverSplitsTags(t *testing.T) {
	in := "ab<bold>cd</bold>ef<large>gh</large>ij<divider>kl<cut>mn"
	for w := 1; w <= 6; w++ {
		got, err := Wrap(in, w)
		require.NoError(t, err)
		for _, line := range strings.Split(got, "\n") {
			assert.Equal(t, strings.Count(line, "<"), strings.Count(line, ">"), "width %d line %q", w, line)
		}
		assert.Equal(t, strings.ReplaceAll(in, "\n", ""), strings.ReplaceAll(got, "\n", ""))
	}
}

func TestWrapFlushesAsSoonAsFull(t *testing.T) {
	got, err := Wrap("<bold>abcde</bold> fgh", 5)
	require.NoError(t, err)
	assert.Equal(t, "<bold>abcde\n</bold>fgh", got)

	// Exactly full: nothing is left for a second line.
	got, err = Wrap("abcde", 5)
	require.NoError(t, err)
	assert.Equal(t, "abcde", got)
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 0, VisibleLen(""))
	assert.Equal(t, 2, VisibleLen("<bold>Hi</bold>"))
	assert.Equal(t, 3, VisibleLen("a<cut>b<x>c"))
	assert.Equal(t, 1, VisibleLen("a<unterminated"))
	assert.Equal(t, 4, VisibleLen("£1.5"))
}
