package markup

import "strings"

// NodeKind classifies a parsed node.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeNewline
	NodeStyle
	NodeAlign
	NodeDivider
	NodeCut
)

// Style is the character style applied by a NodeStyle.
type Style int

const (
	StyleBold Style = iota + 1
	StyleLarge
	// StyleBoldLarge is the exact nesting <bold><large>..</large></bold>.
	StyleBoldLarge
)

// Node is an element of the parsed markup tree.
type Node struct {
	Kind     NodeKind
	Text     string // NodeText
	Style    Style  // NodeStyle
	Align    Tag    // NodeAlign: TagLeft, TagCenter or TagRight
	Children []Node // NodeStyle, NodeAlign
}

// Parse tokenizes s and pairs open/close tags with a stack. Pairs may span
// newlines. A close tag that does not match the innermost open tag, and any
// open tag still unclosed at the end of input, degrade to literal text.
func Parse(s string) []Node {
	return build(Tokenize(s))
}

type frame struct {
	open     Token
	children []Node
}

func build(toks []Token) []Node {
	stack := []*frame{{}}
	top := func() *frame { return stack[len(stack)-1] }

	for _, tok := range toks {
		switch tok.Kind {
		case TokenText:
			appendNode(&top().children, Node{Kind: NodeText, Text: tok.Text})
		case TokenNewline:
			appendNode(&top().children, Node{Kind: NodeNewline})
		case TokenSelfClosing:
			kind := NodeCut
			if tok.Tag == TagDivider {
				kind = NodeDivider
			}
			appendNode(&top().children, Node{Kind: kind})
		case TokenOpen:
			stack = append(stack, &frame{open: tok})
		case TokenClose:
			f := top()
			if len(stack) == 1 || f.open.Tag != tok.Tag {
				appendNode(&f.children, Node{Kind: NodeText, Text: tok.Text})
				continue
			}
			stack = stack[:len(stack)-1]
			appendNode(&top().children, closeFrame(f))
		}
	}

	for len(stack) > 1 {
		f := top()
		stack = stack[:len(stack)-1]
		parent := top()
		appendNode(&parent.children, Node{Kind: NodeText, Text: f.open.Text})
		for _, c := range f.children {
			appendNode(&parent.children, c)
		}
	}
	return stack[0].children
}

func closeFrame(f *frame) Node {
	switch f.open.Tag {
	case TagBold:
		if len(f.children) == 1 && f.children[0].Kind == NodeStyle && f.children[0].Style == StyleLarge {
			return Node{Kind: NodeStyle, Style: StyleBoldLarge, Children: f.children[0].Children}
		}
		return Node{Kind: NodeStyle, Style: StyleBold, Children: f.children}
	case TagLarge:
		return Node{Kind: NodeStyle, Style: StyleLarge, Children: f.children}
	default:
		return Node{Kind: NodeAlign, Align: f.open.Tag, Children: f.children}
	}
}

// appendNode appends n, merging adjacent text nodes.
func appendNode(dst *[]Node, n Node) {
	if n.Kind == NodeText {
		if n.Text == "" {
			return
		}
		if l := len(*dst); l > 0 && (*dst)[l-1].Kind == NodeText {
			(*dst)[l-1].Text += n.Text
			return
		}
	}
	*dst = append(*dst, n)
}

// Walk calls fn for every node in depth-first order.
func Walk(nodes []Node, fn func(Node)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Children, fn)
	}
}

// Strip returns s with every recognized tag removed. Malformed tags stay, as
// they would print.
func Strip(s string) string {
	var b strings.Builder
	Walk(Parse(s), func(n Node) {
		switch n.Kind {
		case NodeText:
			b.WriteString(n.Text)
		case NodeNewline:
			b.WriteByte('\n')
		}
	})
	return b.String()
}
