// Package tui holds the interactive terminal views: a note browser and a
// scrollable receipt preview.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/slipnote/pkg/api"
)

// Actions are the operations the browser can trigger on the selected note.
// Nil actions are hidden.
type Actions struct {
	// Receipt renders the terminal receipt shown by enter.
	Receipt func(n api.Note) (string, error)
	Print   func(ctx context.Context, n api.Note) error
	Delete  func(ctx context.Context, id string) error
}

// RunBrowser opens an interactive table of notes.
func RunBrowser(ctx context.Context, notes []api.Note, headers bool, actions Actions) error {
	m := newModel(ctx, notes, headers, actions)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

type model struct {
	ctx     context.Context
	table   table.Model
	notes   []api.Note
	actions Actions
	headers bool
	width   int
	height  int
	modal   *receiptModal
	status  string
	lastDur time.Duration
}

func newModel(ctx context.Context, notes []api.Note, headers bool, actions Actions) model {
	m := model{ctx: ctx, notes: notes, headers: headers, actions: actions}
	m.table = table.New(table.WithColumns(m.columnsFor(12, 40, 16, 6)), table.WithFocused(true))
	m.updateRows()
	m.applyStyles()
	return m
}

func (m *model) updateRows() {
	rows := make([]table.Row, 0, len(m.notes))
	for _, n := range m.notes {
		rows = append(rows, table.Row{
			n.ID,
			n.Title,
			n.UpdatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprint(len([]rune(n.Body))),
		})
	}
	m.table.SetRows(rows)
}

func (m model) selected() (api.Note, int, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.notes) {
		return api.Note{}, idx, false
	}
	return m.notes[idx], idx, true
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionResultMsg:
		m.lastDur = msg.dur
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.verb, msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s %s", msg.done, msg.id)
		if msg.verb == "delete" && msg.idx >= 0 && msg.idx < len(m.notes) {
			m.notes = append(m.notes[:msg.idx], m.notes[msg.idx+1:]...)
			m.updateRows()
			m.table.SetCursor(min(msg.idx, max(len(m.notes)-1, 0)))
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.applyLayout()
		if m.modal != nil {
			m.modal.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if m.modal != nil {
			switch msg.String() {
			case "q", "esc", "enter":
				m.modal = nil
				return m, nil
			}
			var cmd tea.Cmd
			m.modal, cmd = m.modal.update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			n, _, ok := m.selected()
			if !ok || m.actions.Receipt == nil {
				return m, nil
			}
			content, err := m.actions.Receipt(n)
			if err != nil {
				m.status = "preview failed: " + err.Error()
				return m, nil
			}
			m.modal = newReceiptModal(n.Title, content, m.width, m.height)
			return m, nil
		case "p":
			n, idx, ok := m.selected()
			if !ok || m.actions.Print == nil {
				return m, nil
			}
			m.status = fmt.Sprintf("Printing %s…", n.ID)
			return m, m.runAction("print", "Printed", n.ID, idx, func() error { return m.actions.Print(m.ctx, n) })
		case "d":
			n, idx, ok := m.selected()
			if !ok || m.actions.Delete == nil {
				return m, nil
			}
			m.status = fmt.Sprintf("Deleting %s…", n.ID)
			return m, m.runAction("delete", "Deleted", n.ID, idx, func() error { return m.actions.Delete(m.ctx, n.ID) })
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// actionResultMsg carries the outcome of a print or delete back to Update.
type actionResultMsg struct {
	verb string
	done string
	id   string
	idx  int
	err  error
	dur  time.Duration
}

func (m model) runAction(verb, done, id string, idx int, fn func() error) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := fn()
		return actionResultMsg{verb: verb, done: done, id: id, idx: idx, err: err, dur: time.Since(start)}
	}
}

func (m model) help() string {
	parts := []string{"↑/↓ navigate"}
	if m.actions.Receipt != nil {
		parts = append(parts, "enter=preview")
	}
	if m.actions.Print != nil {
		parts = append(parts, "p=print")
	}
	if m.actions.Delete != nil {
		parts = append(parts, "d=delete")
	}
	return strings.Join(append(parts, "q=exit"), " • ")
}

func (m model) renderFooter() string {
	left := m.help()
	var right string
	if m.status != "" {
		if m.lastDur > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, m.lastDur.Round(time.Millisecond))
		} else {
			right = m.status + " • "
		}
	}
	right += fmt.Sprintf("%d notes ", len(m.notes))

	space := max(m.table.Width()-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	if len(m.notes) == 0 {
		return "(no notes)\n"
	}
	base := m.table.View() + "\n" + m.renderFooter() + "\n"
	if m.modal == nil {
		return base
	}
	return m.renderOverlay(base, m.modal.View(), m.modal.width, m.modal.height)
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetHeight(max(6, m.height-1))
	m.table.SetWidth(m.width)
	avail := m.width - 4
	if avail < 40 {
		return
	}
	idW := 26
	if avail < idW+60 {
		idW = 8
	}
	updatedW, sizeW := 16, 6
	titleW := max(avail-idW-updatedW-sizeW, 8)
	m.table.SetColumns(m.columnsFor(idW, titleW, updatedW, sizeW))
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.BorderBottom(false).Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

func (m *model) columnsFor(idW, titleW, updatedW, sizeW int) []table.Column {
	titles := []string{"ID", "Title", "Updated", "Size"}
	if !m.headers {
		titles = []string{"", "", "", ""}
	}
	return []table.Column{
		{Title: titles[0], Width: idW},
		{Title: titles[1], Width: titleW},
		{Title: titles[2], Width: updatedW},
		{Title: titles[3], Width: sizeW},
	}
}
