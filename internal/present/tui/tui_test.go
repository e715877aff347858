package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/slipnote/pkg/api"
)

func makeNotes(n int) []api.Note {
	now := time.Now().UTC().Truncate(time.Second)
	out := make([]api.Note, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, api.Note{
			ID:        string(rune('a' + i)),
			Title:     "t",
			Body:      "body",
			UpdatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowserOpensAndClosesReceipt(t *testing.T) {
	var rendered string
	m := newModel(context.Background(), makeNotes(3), true, Actions{
		Receipt: func(n api.Note) (string, error) {
			rendered = n.ID
			return "receipt " + n.ID, nil
		},
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.(model).Update(key("enter"))
	bm := next.(model)
	require.NotNil(t, bm.modal)
	assert.Equal(t, "a", rendered)
	assert.Contains(t, bm.modal.View(), "receipt a")

	next, _ = bm.Update(key("esc"))
	assert.Nil(t, next.(model).modal)
}

func TestBrowserDelete(t *testing.T) {
	var deleted []string
	m := newModel(context.Background(), makeNotes(2), false, Actions{
		Delete: func(ctx context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	})
	next, cmd := m.Update(key("d"))
	require.NotNil(t, cmd)
	msg := cmd()
	next, _ = next.(model).Update(msg)
	bm := next.(model)
	assert.Equal(t, []string{"a"}, deleted)
	require.Len(t, bm.notes, 1)
	assert.Equal(t, "b", bm.notes[0].ID)
	assert.Contains(t, bm.status, "Deleted a")
}

func TestBrowserPrintFailureKeepsNotes(t *testing.T) {
	m := newModel(context.Background(), makeNotes(2), false, Actions{
		Print: func(ctx context.Context, n api.Note) error { return errors.New("paper out") },
	})
	next, cmd := m.Update(key("p"))
	require.NotNil(t, cmd)
	next, _ = next.(model).Update(cmd())
	bm := next.(model)
	assert.Len(t, bm.notes, 2)
	assert.Contains(t, bm.status, "print failed: paper out")
}

func TestBrowserHelpListsActions(t *testing.T) {
	m := newModel(context.Background(), nil, false, Actions{})
	assert.Equal(t, "↑/↓ navigate • q=exit", m.help())
	assert.Equal(t, "(no notes)\n", m.View())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPreviewModel(t *testing.T) {
	m := newPreviewModel("Title", "line1\nline2")
	assert.Contains(t, m.View(), "Loading")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	pm := next.(previewModel)
	assert.True(t, pm.ready)
	assert.Contains(t, pm.View(), "line1")
	assert.Contains(t, pm.View(), "Title")

	_, cmd := pm.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
