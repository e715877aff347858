package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// receiptModal shows a rendered receipt in a scrollable, bordered viewport
// on top of the browser.
type receiptModal struct {
	title   string
	vp      viewport.Model
	width   int
	height  int
	padX    int
	padY    int
	box     lipglossv2.Style
	content string
}

func newReceiptModal(title, content string, termW, termH int) *receiptModal {
	m := &receiptModal{title: title, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	m.setContent(content)
	return m
}

func (m *receiptModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.8)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))

	innerW := max(w-2-m.padX*2, 10)
	innerH := max(h-2-m.padY*2, 5)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.vp.SetContent(m.content)
}

func (m *receiptModal) setContent(s string) {
	m.content = s
	m.vp.SetContent(s)
}

func (m *receiptModal) update(msg tea.Msg) (*receiptModal, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *receiptModal) View() string { return m.box.Render(m.vp.View()) }
