// Package render turns note markup into a screen preview or an ESC/POS print
// job. Both paths share the same wrapper and parser; only the translator
// differs.
package render

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/markup"
	"github.com/mithrel/slipnote/pkg/api"
)

// RenderPreview wraps text at paperWidth and returns styled HTML for display.
// Recognized tags become styled elements; everything else, including
// unrecognized <...> sequences, is passed through unescaped.
func RenderPreview(text string, paperWidth int) (string, error) {
	return Preview(normalizeNewlines(text), paperWidth)
}

// RenderPrinterJob returns a complete ESC/POS job for text: initialize, top
// margin, optional title, timestamp, the wrapped body, bottom margin and a
// final cut.
func RenderPrinterJob(text string, opts PrinterOptions) ([]byte, error) {
	return PrinterJob(normalizeNewlines(text), opts)
}

// Render dispatches to the translator for target.
func Render(target Target, text string, opts PrinterOptions) ([]byte, error) {
	switch target {
	case TargetPreview:
		s, err := RenderPreview(text, opts.PaperWidth)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case TargetPrinterBytes:
		return RenderPrinterJob(text, opts)
	default:
		return nil, errors.Wrapf(markup.ErrInvalidArgument, "unknown render target %d", int(target))
	}
}

// ComposeNoteText assembles the text shown in a note preview: the title as
// bold large text, the timestamp line, a blank line and the body. It mirrors
// the header RenderPrinterJob prints.
func ComposeNoteText(title, body string, now time.Time) string {
	var b strings.Builder
	if strings.TrimSpace(title) != "" {
		b.WriteString("<bold><large>" + title + "</large></bold>\n")
	}
	b.WriteString(PrintedLine(now))
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

// PreviewNote renders the preview of a whole note.
func PreviewNote(n api.Note, paperWidth int, now time.Time) (string, error) {
	return RenderPreview(ComposeNoteText(n.Title, n.Body, now), paperWidth)
}

// PrintNote renders the print job of a whole note. The note title replaces
// opts.Title.
func PrintNote(n api.Note, opts PrinterOptions) ([]byte, error) {
	opts.Title = n.Title
	return RenderPrinterJob(n.Body, opts)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
