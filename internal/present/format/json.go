package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/slipnote/pkg/api"
)

func WriteJSONNotes(w io.Writer, notes []api.Note, indent bool) error {
	if notes == nil {
		notes = []api.Note{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(notes)
}

func WriteJSONNote(w io.Writer, n api.Note, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(n)
}
