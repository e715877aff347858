package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/slipnote/internal/markup"
)

var (
	receiptBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	largeStyle = lipgloss.NewStyle().Underline(true)
)

var alignPositions = map[markup.Tag]lipgloss.Position{
	markup.TagLeft:   lipgloss.Left,
	markup.TagCenter: lipgloss.Center,
	markup.TagRight:  lipgloss.Right,
}

// ReceiptLines lays text out the way the printer would: wrapped at width,
// aligned lines padded to width, dividers and cuts drawn as rules. Double
// size text cannot be shown in a terminal and is underlined instead.
func ReceiptLines(text string, width int) ([]string, error) {
	wrapped, err := markup.Wrap(text, width)
	if err != nil {
		return nil, err
	}
	r := receiptRenderer{width: width, align: lipgloss.Left, lineAlign: lipgloss.Left}
	r.walk(markup.Parse(wrapped), lipgloss.NewStyle())
	r.endLine()
	return r.lines, nil
}

// WriteReceipt writes the framed terminal receipt of text.
func WriteReceipt(w io.Writer, text string, width int) error {
	s, err := Receipt(text, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

// Receipt returns the framed terminal receipt of text.
func Receipt(text string, width int) (string, error) {
	lines, err := ReceiptLines(text, width)
	if err != nil {
		return "", err
	}
	return receiptBox.Render(strings.Join(lines, "\n")), nil
}

type receiptRenderer struct {
	width int
	lines []string
	cur   strings.Builder
	// align is the alignment of the enclosing tag; lineAlign is the one the
	// current line will be placed with.
	align     lipgloss.Position
	lineAlign lipgloss.Position
}

func (r *receiptRenderer) walk(nodes []markup.Node, style lipgloss.Style) {
	for _, n := range nodes {
		switch n.Kind {
		case markup.NodeText:
			r.cur.WriteString(style.Render(n.Text))
		case markup.NodeNewline:
			r.endLine()
		case markup.NodeStyle:
			s := style
			if n.Style == markup.StyleBold || n.Style == markup.StyleBoldLarge {
				s = s.Inherit(boldStyle)
			}
			if n.Style == markup.StyleLarge || n.Style == markup.StyleBoldLarge {
				s = s.Inherit(largeStyle)
			}
			r.walk(n.Children, s)
		case markup.NodeAlign:
			prev := r.align
			r.align = alignPositions[n.Align]
			r.lineAlign = r.align
			r.walk(n.Children, style)
			r.align = prev
		case markup.NodeDivider:
			r.cur.WriteString(strings.Repeat("─", r.width))
		case markup.NodeCut:
			r.cur.WriteString("8<" + strings.Repeat("-", max(r.width-2, 0)))
		}
	}
}

func (r *receiptRenderer) endLine() {
	r.lines = append(r.lines, lipgloss.PlaceHorizontal(r.width, r.lineAlign, r.cur.String()))
	r.cur.Reset()
	r.lineAlign = r.align
}
