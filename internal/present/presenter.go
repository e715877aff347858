package present

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/present/format"
	"github.com/mithrel/slipnote/internal/present/tui"
	"github.com/mithrel/slipnote/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeReceipt
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// PaperWidth is used by the receipt mode.
	PaperWidth int
	// Actions back the interactive browser in ModeTUI.
	Actions tui.Actions
}

// ParseMode parses "plain", "pretty", "json", "ndjson", "receipt" or "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "receipt":
		return ModeReceipt, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// RenderNotes renders a list of notes according to opts.
func RenderNotes(ctx context.Context, w io.Writer, notes []api.Note, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNotes(w, notes, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNotes(w, notes)
	case ModeTUI:
		return tui.RunBrowser(ctx, notes, opts.Headers, opts.Actions)
	default:
		return format.WritePlainNotes(w, notes, opts.Headers)
	}
}

// RenderNote renders a single note according to opts.
func RenderNote(ctx context.Context, w io.Writer, n api.Note, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONNote(w, n, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONNotes(w, []api.Note{n})
	case ModePretty:
		return format.WritePrettyNote(w, n)
	case ModeReceipt:
		return format.WriteReceipt(w, n.Body, opts.PaperWidth)
	case ModeTUI:
		return errors.New("tui output is only available for note lists")
	default:
		return format.WritePlainNote(w, n, opts.Headers)
	}
}
