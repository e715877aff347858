package render

import (
	"strings"

	"github.com/mithrel/slipnote/internal/markup"
)

// Every element pins font and colours so spaces line up with the printout
// whatever the host theme.
const baseStyle = "font-family:monospace; color:#000; background-color:#fff;"

const (
	dividerHTML = `<div style="border-top:1px solid #ccc; margin:8px 0 8px 0; height:0; ` + baseStyle + `"></div>`
	cutHTML     = `<div style="border-top:3px dashed #888; margin:18px 0 18px 0; height:0; ` + baseStyle + `"></div>`
)

var spanStyles = map[markup.Style]string{
	markup.StyleBold:      "font-weight:bold; " + baseStyle,
	markup.StyleLarge:     "font-size:1.5em; " + baseStyle,
	markup.StyleBoldLarge: "font-size:1.5em; font-weight:bold; " + baseStyle,
}

var alignNames = map[markup.Tag]string{
	markup.TagLeft:   "left",
	markup.TagCenter: "center",
	markup.TagRight:  "right",
}

// Preview wraps text at width and translates it to styled HTML.
func Preview(text string, width int) (string, error) {
	wrapped, err := markup.Wrap(text, width)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	writeHTML(&b, markup.Parse(wrapped))
	return b.String(), nil
}

func writeHTML(b *strings.Builder, nodes []markup.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case markup.NodeText:
			b.WriteString(n.Text)
		case markup.NodeNewline:
			b.WriteByte('\n')
		case markup.NodeStyle:
			b.WriteString(`<span style="` + spanStyles[n.Style] + `">`)
			writeHTML(b, n.Children)
			b.WriteString("</span>")
		case markup.NodeAlign:
			b.WriteString(`<div style="text-align:` + alignNames[n.Align] + `; ` + baseStyle + `">`)
			writeHTML(b, n.Children)
			b.WriteString("</div>")
		case markup.NodeDivider:
			b.WriteString(dividerHTML)
		case markup.NodeCut:
			b.WriteString(cutHTML)
		}
	}
}
