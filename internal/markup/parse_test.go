package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("a<bold>b</bold>\n<cut><x></cut>c<d")
	want := []Token{
		{Kind: TokenText, Text: "a"},
		{Kind: TokenOpen, Tag: TagBold, Text: "<bold>"},
		{Kind: TokenText, Text: "b"},
		{Kind: TokenClose, Tag: TagBold, Text: "</bold>"},
		{Kind: TokenNewline, Text: "\n"},
		{Kind: TokenSelfClosing, Tag: TagCut, Text: "<cut>"},
		{Kind: TokenText, Text: "<x></cut>c<d"},
	}
	assert.Equal(t, want, toks)
}

func TestTokenizeEveryTag(t *testing.T) {
	for tag, name := range tagNames {
		toks := Tokenize("<" + name + ">")
		require.Len(t, toks, 1, name)
		assert.Equal(t, tag, toks[0].Tag, name)
		if tag.Paired() {
			assert.Equal(t, TokenOpen, toks[0].Kind, name)
			close := Tokenize("</" + name + ">")
			require.Len(t, close, 1, name)
			assert.Equal(t, TokenClose, close[0].Kind, name)
		} else {
			assert.Equal(t, TokenSelfClosing, toks[0].Kind, name)
		}
	}
}

func TestParseStyles(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Node
	}{
		{
			name: "bold",
			in:   "<bold>Hi</bold>",
			want: []Node{{Kind: NodeStyle, Style: StyleBold, Children: []Node{{Kind: NodeText, Text: "Hi"}}}},
		},
		{
			name: "large",
			in:   "x<large>Big</large>",
			want: []Node{
				{Kind: NodeText, Text: "x"},
				{Kind: NodeStyle, Style: StyleLarge, Children: []Node{{Kind: NodeText, Text: "Big"}}},
			},
		},
		{
			name: "combined bold large",
			in:   "<bold><large>T</large></bold>",
			want: []Node{{Kind: NodeStyle, Style: StyleBoldLarge, Children: []Node{{Kind: NodeText, Text: "T"}}}},
		},
		{
			name: "bold around large plus text stays nested",
			in:   "<bold>a<large>T</large></bold>",
			want: []Node{{Kind: NodeStyle, Style: StyleBold, Children: []Node{
				{Kind: NodeText, Text: "a"},
				{Kind: NodeStyle, Style: StyleLarge, Children: []Node{{Kind: NodeText, Text: "T"}}},
			}}},
		},
		{
			name: "alignment",
			in:   "<right>r</right>",
			want: []Node{{Kind: NodeAlign, Align: TagRight, Children: []Node{{Kind: NodeText, Text: "r"}}}},
		},
		{
			name: "standalone",
			in:   "<divider>\n<cut>",
			want: []Node{{Kind: NodeDivider}, {Kind: NodeNewline}, {Kind: NodeCut}},
		},
		{
			name: "empty inner content",
			in:   "<bold></bold>",
			want: []Node{{Kind: NodeStyle, Style: StyleBold}},
		},
		{
			name: "pair across a newline",
			in:   "<bold>ab\ncd</bold>",
			want: []Node{{Kind: NodeStyle, Style: StyleBold, Children: []Node{
				{Kind: NodeText, Text: "ab"},
				{Kind: NodeNewline},
				{Kind: NodeText, Text: "cd"},
			}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.in))
		})
	}
}

func TestParseMalformedDegradesToText(t *testing.T) {
	tests := []struct {
		in   string
		want []Node
	}{
		{"<bold>open", []Node{{Kind: NodeText, Text: "<bold>open"}}},
		{"stray</bold>", []Node{{Kind: NodeText, Text: "stray</bold>"}}},
		{"a < b", []Node{{Kind: NodeText, Text: "a < b"}}},
		{"</cut>", []Node{{Kind: NodeText, Text: "</cut>"}}},
		{
			"<bold>a<large>b</bold>c</large>",
			[]Node{
				{Kind: NodeText, Text: "<bold>a"},
				{Kind: NodeStyle, Style: StyleLarge, Children: []Node{{Kind: NodeText, Text: "b</bold>c"}}},
			},
		},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Parse(tc.in), tc.in)
	}
}

func TestWalkVisitsNestedNodes(t *testing.T) {
	var kinds []NodeKind
	Walk(Parse("<center><bold>x</bold></center>"), func(n Node) { kinds = append(kinds, n.Kind) })
	assert.Equal(t, []NodeKind{NodeAlign, NodeStyle, NodeText}, kinds)
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "Title\nmilk\n", Strip("<bold><large>Title</large></bold>\n<center>milk</center>\n<divider>"))
	assert.Equal(t, "<bold>open", Strip("<bold>open"))
	assert.Equal(t, "", Strip(""))
}
