package escpos

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/charmap"
)

// CodePage names the character table text is transcoded into.
type CodePage string

const (
	// CP437 is the power-on table of most ESC/POS printers (ESC t 0).
	CP437  CodePage = "cp437"
	CP858  CodePage = "cp858"
	CP1252 CodePage = "cp1252"
	// UTF8 sends text bytes untouched and selects no table.
	UTF8 CodePage = "utf8"
)

type codeTable struct {
	charmap *charmap.Charmap
	// selector is the ESC t argument; negative means "leave the printer default".
	selector int
}

var codeTables = map[CodePage]codeTable{
	CP437:  {charmap: charmap.CodePage437, selector: -1},
	CP858:  {charmap: charmap.CodePage858, selector: 19},
	CP1252: {charmap: charmap.Windows1252, selector: 16},
	UTF8:   {selector: -1},
}

// ParseCodePage accepts a code page name such as "cp437" (case-insensitive).
// The empty string selects CP437.
func ParseCodePage(s string) (CodePage, error) {
	cp := CodePage(strings.ToLower(strings.TrimSpace(s)))
	if cp == "" {
		return CP437, nil
	}
	if _, ok := codeTables[cp]; !ok {
		return "", errors.Newf("unknown code page %q (want cp437, cp858, cp1252 or utf8)", s)
	}
	return cp, nil
}

// CodePages lists the supported code page names.
func CodePages() []CodePage { return []CodePage{CP437, CP858, CP1252, UTF8} }

// transliterations cover characters missing from the single-byte tables.
var transliterations = map[rune]string{
	'…': "...",
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'–': "-",
	'—': "-",
	'€': "EUR",
}

// Encode transcodes s into the code page. Unknown code pages behave like CP437.
func (cp CodePage) Encode(s string) []byte {
	if cp == UTF8 {
		return []byte(s)
	}
	table, ok := codeTables[cp]
	if !ok || table.charmap == nil {
		table = codeTables[CP437]
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		out = appendRune(out, table.charmap, r)
	}
	return out
}

func appendRune(out []byte, cm *charmap.Charmap, r rune) []byte {
	if r < utf8.RuneSelf {
		return append(out, byte(r))
	}
	if b, ok := cm.EncodeRune(r); ok {
		return append(out, b)
	}
	if alt, ok := transliterations[r]; ok {
		for _, ar := range alt {
			out = appendRune(out, cm, ar)
		}
		return out
	}
	return append(out, '?')
}

func (cp CodePage) selectTable() []byte {
	table, ok := codeTables[cp]
	if !ok || table.selector < 0 {
		return nil
	}
	return selectCodeTable(byte(table.selector))
}
