package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/mithrel/slipnote/pkg/api"
)

// TSV columns: id, title, updated, size (body runes).
var headerLine = "id\ttitle\tupdated\tsize\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func plainRow(n api.Note) string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\n",
		esc(n.ID), esc(n.Title), n.UpdatedAt.Local().Format("2006-01-02 15:04"), utf8.RuneCountInString(n.Body))
}

func WritePlainNotes(w io.Writer, notes []api.Note, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, n := range notes {
		_, _ = io.WriteString(tw, plainRow(n))
	}
	return tw.Flush()
}

// WritePlainNote writes the note header row followed by the raw body.
func WritePlainNote(w io.Writer, n api.Note, headers bool) error {
	if err := WritePlainNotes(w, []api.Note{n}, headers); err != nil {
		return err
	}
	body := n.Body
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	_, err := io.WriteString(w, "\n"+body)
	return err
}
