package format

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/markup"
	"github.com/mithrel/slipnote/pkg/api"
)

// WritePrettyNote renders a note as markdown through glamour. Markup tags are
// mapped onto their closest markdown equivalent.
func WritePrettyNote(w io.Writer, n api.Note) error {
	var md strings.Builder
	md.WriteString("# " + n.Title + "\n\n")
	md.WriteString("> **ID:** " + n.ID + " | **Modified:** " + n.UpdatedAt.Local().Format(time.RFC3339) + "\n\n")
	md.WriteString("---\n\n")
	md.WriteString(MarkupToMarkdown(n.Body))
	md.WriteString("\n")

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return errors.Wrap(err, "create renderer")
	}
	out, err := r.Render(md.String())
	if err != nil {
		return errors.Wrap(err, "render markdown")
	}
	_, err = io.WriteString(w, out)
	return err
}

// MarkupToMarkdown converts note markup to markdown: bold and large become
// strong emphasis, dividers become thematic breaks and cuts a scissor line.
// Alignment has no markdown form and is dropped.
func MarkupToMarkdown(text string) string {
	var b strings.Builder
	writeMarkdown(&b, markup.Parse(text))
	return b.String()
}

func writeMarkdown(b *strings.Builder, nodes []markup.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case markup.NodeText:
			b.WriteString(n.Text)
		case markup.NodeNewline:
			// Hard line break.
			b.WriteString("  \n")
		case markup.NodeStyle:
			b.WriteString("**")
			writeMarkdown(b, n.Children)
			b.WriteString("**")
		case markup.NodeAlign:
			writeMarkdown(b, n.Children)
		case markup.NodeDivider:
			b.WriteString("\n\n---\n")
		case markup.NodeCut:
			b.WriteString("\n\n8< - - - - - - - -\n")
		}
	}
}
