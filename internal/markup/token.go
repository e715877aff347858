package markup

import "strings"

// Tag is one member of the closed markup vocabulary.
type Tag int

const (
	TagBold Tag = iota + 1
	TagLarge
	TagCenter
	TagRight
	TagLeft
	TagDivider
	TagCut
)

var tagNames = map[Tag]string{
	TagBold:    "bold",
	TagLarge:   "large",
	TagCenter:  "center",
	TagRight:   "right",
	TagLeft:    "left",
	TagDivider: "divider",
	TagCut:     "cut",
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, name := range tagNames {
		m[name] = t
	}
	return m
}()

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// Paired reports whether the tag wraps inner text with an open/close pair.
func (t Tag) Paired() bool { return t != TagDivider && t != TagCut }

// IsAlign reports whether the tag is one of the alignment tags.
func (t Tag) IsAlign() bool { return t == TagCenter || t == TagRight || t == TagLeft }

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenNewline
	TokenOpen
	TokenClose
	TokenSelfClosing
)

// Token is a single lexical unit of markup text. Text always holds the
// source bytes the token was read from.
type Token struct {
	Kind TokenKind
	Tag  Tag
	Text string
}

// Tokenize splits s into text, newline and tag tokens. Anything that looks
// like a tag but is not part of the vocabulary, including a '<' without a
// closing '>', is kept as literal text.
func Tokenize(s string) []Token {
	var toks []Token
	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			toks = append(toks, Token{Kind: TokenText, Text: text.String()})
			text.Reset()
		}
	}
	for i := 0; i < len(s); {
		switch s[i] {
		case '\n':
			flushText()
			toks = append(toks, Token{Kind: TokenNewline, Text: "\n"})
			i++
			continue
		case '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				text.WriteString(s[i:])
				i = len(s)
				continue
			}
			raw := s[i : i+end+1]
			if tok, ok := classifyTag(raw); ok {
				flushText()
				toks = append(toks, tok)
			} else {
				text.WriteString(raw)
			}
			i += end + 1
			continue
		}
		next := strings.IndexAny(s[i:], "<\n")
		if next < 0 {
			text.WriteString(s[i:])
			break
		}
		text.WriteString(s[i : i+next])
		i += next
	}
	flushText()
	return toks
}

func classifyTag(raw string) (Token, bool) {
	inner := raw[1 : len(raw)-1]
	closing := strings.HasPrefix(inner, "/")
	if closing {
		inner = inner[1:]
	}
	tag, ok := tagsByName[inner]
	if !ok {
		return Token{}, false
	}
	switch {
	case tag.Paired() && closing:
		return Token{Kind: TokenClose, Tag: tag, Text: raw}, true
	case tag.Paired():
		return Token{Kind: TokenOpen, Tag: tag, Text: raw}, true
	case !closing:
		return Token{Kind: TokenSelfClosing, Tag: tag, Text: raw}, true
	default:
		// </cut> and </divider> are not part of the vocabulary.
		return Token{}, false
	}
}
