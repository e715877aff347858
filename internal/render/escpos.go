package render

import (
	"strings"

	"github.com/mithrel/slipnote/internal/escpos"
	"github.com/mithrel/slipnote/internal/markup"
)

const marginLines = 3

// PrinterJob wraps text and translates it to a complete ESC/POS job.
func PrinterJob(text string, opts PrinterOptions) ([]byte, error) {
	wrapped, err := markup.Wrap(text, opts.PaperWidth)
	if err != nil {
		return nil, err
	}
	now := opts.now()

	buf := escpos.NewBuffer(opts.CodePage).Init().Newlines(marginLines)
	if title := strings.TrimSpace(opts.Title); title != "" {
		buf.Command(escpos.DoubleSize).Text(title).Command(escpos.NormalSize).Newlines(1)
	}
	buf.Text(PrintedLine(now)).Newlines(2)

	writeESCPOS(buf, markup.Parse(wrapped))
	// Terminates the last wrapped line.
	buf.Newlines(1)

	buf.Newlines(marginLines).Command(escpos.Cut)
	return buf.Bytes(), nil
}

var alignCommands = map[markup.Tag]escpos.Command{
	markup.TagLeft:   escpos.AlignLeft,
	markup.TagCenter: escpos.AlignCenter,
	markup.TagRight:  escpos.AlignRight,
}

func writeESCPOS(buf *escpos.Buffer, nodes []markup.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case markup.NodeText:
			buf.Text(n.Text)
		case markup.NodeNewline:
			buf.Newlines(1)
		case markup.NodeStyle:
			switch n.Style {
			case markup.StyleBold:
				buf.Command(escpos.BoldOn)
				writeESCPOS(buf, n.Children)
				buf.Command(escpos.BoldOff)
			case markup.StyleLarge:
				buf.Command(escpos.DoubleSize)
				writeESCPOS(buf, n.Children)
				buf.Command(escpos.NormalSize)
			case markup.StyleBoldLarge:
				buf.Command(escpos.BoldOn, escpos.DoubleSize)
				writeESCPOS(buf, n.Children)
				buf.Command(escpos.NormalSize, escpos.BoldOff)
			}
		case markup.NodeAlign:
			buf.Command(alignCommands[n.Align])
			writeESCPOS(buf, n.Children)
			buf.Command(escpos.AlignLeft)
		case markup.NodeCut:
			buf.Command(escpos.Cut)
		case markup.NodeDivider:
			// Dividers only exist in the preview.
		}
	}
}
