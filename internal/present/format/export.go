package format

import (
	"io"
	"strings"
	"time"

	"github.com/mithrel/slipnote/pkg/api"
)

// WriteExport writes the plain-text export of a note: a Title and Date header,
// a blank line, then the raw markup body.
func WriteExport(w io.Writer, n api.Note) error {
	_, err := io.WriteString(w, "Title: "+n.Title+"\nDate: "+n.CreatedAt.UTC().Format(time.RFC3339)+"\n\n"+n.Body)
	return err
}

// ExportFileName names the export file after the title, spaces replaced by
// underscores. Path separators are replaced too.
func ExportFileName(n api.Note) string {
	name := strings.TrimSpace(n.Title)
	if name == "" {
		name = n.ID
	}
	name = strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(name)
	return name + ".txt"
}
