// Package db persists notes and printer settings.
package db

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/util"
	"github.com/mithrel/slipnote/pkg/api"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a version mismatch or a duplicate id.
	ErrConflict = errors.New("conflict")
)

// NoteRepo stores notes.
type NoteRepo interface {
	CreateNote(ctx context.Context, n api.Note) (api.Note, error)
	GetNote(ctx context.Context, id string) (api.Note, error)
	// UpdateNoteCAS stores n only when the stored version equals ifVersion.
	UpdateNoteCAS(ctx context.Context, n api.Note, ifVersion int64) (api.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, q api.ListQuery) ([]api.Note, error)
}

// SettingsRepo stores the printer selection.
type SettingsRepo interface {
	GetPrinterSettings(ctx context.Context) (api.PrinterSettings, error)
	SavePrinterSettings(ctx context.Context, s api.PrinterSettings) (api.PrinterSettings, error)
}

// Store groups the repositories behind one connection.
type Store struct {
	Notes    NoteRepo
	Settings SettingsRepo
	closer   io.Closer
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open returns a Store for dsn: "sqlite://<path>", a bare path, or "mem://".
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.HasPrefix(dsn, "mem://") {
		m := newMemStore()
		return &Store{Notes: m, Settings: m}, nil
	}
	return openSQLite(ctx, dsn)
}

// ResolveNoteID finds the single note whose id starts with prefix.
func ResolveNoteID(ctx context.Context, notes NoteRepo, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.Wrap(ErrNotFound, "empty note id")
	}
	if n, err := notes.GetNote(ctx, prefix); err == nil {
		return n.ID, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	all, err := notes.ListNotes(ctx, api.ListQuery{})
	if err != nil {
		return "", err
	}
	var found []string
	for _, n := range all {
		if strings.HasPrefix(n.ID, prefix) {
			found = append(found, n.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", errors.Wrapf(ErrNotFound, "note %s", prefix)
	case 1:
		return found[0], nil
	default:
		return "", errors.WithHint(errors.Wrapf(ErrConflict, "note id %q is ambiguous (%d matches)", prefix, len(found)),
			"use more characters of the id")
	}
}

// applyQuery filters, orders and limits notes in place. Both backends share
// it so ordering is identical.
func applyQuery(notes []api.Note, q api.ListQuery) []api.Note {
	out := notes[:0]
	for _, n := range notes {
		if !q.Since.IsZero() && n.UpdatedAt.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && n.UpdatedAt.After(q.Until) {
			continue
		}
		out = append(out, n)
	}

	if term := strings.TrimSpace(q.Search); term != "" {
		// Fuzzy search keeps match ranking; sort fields do not apply.
		hay := make([]string, len(out))
		for i, n := range out {
			hay[i] = n.Title + " " + n.Body
		}
		idx := util.RankIndexes(term, hay)
		ranked := make([]api.Note, 0, len(idx))
		for _, i := range idx {
			ranked = append(ranked, out[i])
		}
		out = ranked
	} else {
		sortNotes(out, q.Sort, q.Order)
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func sortNotes(notes []api.Note, field api.SortField, order api.SortOrder) {
	less := func(a, b api.Note) bool {
		switch field {
		case api.SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case api.SortSize:
			return len(a.Body) < len(b.Body)
		default:
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if order == api.OrderAsc {
			return less(notes[i], notes[j])
		}
		return less(notes[j], notes[i])
	})
}

func sortByID(notes []api.Note) {
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
}

func normalizeSettings(s api.PrinterSettings) api.PrinterSettings {
	if s.PaperWidth <= 0 {
		s.PaperWidth = api.DefaultPaperWidth
	}
	if s.AvailablePrinters == nil {
		s.AvailablePrinters = []string{}
	}
	s.DefaultPrinter = strings.TrimSpace(s.DefaultPrinter)
	return s
}
