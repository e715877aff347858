package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// RunPreview shows content in a full-screen scrollable view until q or esc.
func RunPreview(ctx context.Context, title, content string) error {
	_, err := tea.NewProgram(newPreviewModel(title, content), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

type previewModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func newPreviewModel(title, content string) previewModel {
	return previewModel{title: title, content: content}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		if !m.ready {
			m.vp = viewport.New(msg.Width, max(msg.Height-chrome, 1))
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(msg.Height-chrome, 1)
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m previewModel) header() string { return titleStyle.Render(m.title) }

func (m previewModel) footer() string {
	pct := 100
	if m.ready {
		pct = int(m.vp.ScrollPercent() * 100)
	}
	return footerStyle.Render(fmt.Sprintf("↑/↓ scroll • q=exit • %d%%", pct))
}

func (m previewModel) View() string {
	if !m.ready {
		return "\n  Loading…"
	}
	return strings.Join([]string{m.header(), m.vp.View(), m.footer()}, "\n")
}
