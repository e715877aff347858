package escpos

import "bytes"

// Buffer accumulates a print job. Text written through it is transcoded into
// the buffer's code page; commands are written verbatim.
type Buffer struct {
	buf bytes.Buffer
	cp  CodePage
}

// NewBuffer returns an empty job buffer for the given code page.
func NewBuffer(cp CodePage) *Buffer {
	if cp == "" {
		cp = CP437
	}
	return &Buffer{cp: cp}
}

// Init writes the initialize sequence followed by the code table selection,
// when the code page needs one.
func (b *Buffer) Init() *Buffer {
	b.buf.Write(Init.Bytes())
	b.buf.Write(b.cp.selectTable())
	return b
}

// Command writes each command in order.
func (b *Buffer) Command(cmds ...Command) *Buffer {
	for _, c := range cmds {
		b.buf.Write(c.Bytes())
	}
	return b
}

// Text writes s in the buffer's code page.
func (b *Buffer) Text(s string) *Buffer {
	b.buf.Write(b.cp.Encode(s))
	return b
}

// Newlines writes n line feeds.
func (b *Buffer) Newlines(n int) *Buffer {
	for i := 0; i < n; i++ {
		b.buf.WriteByte('\n')
	}
	return b
}

// Bytes returns the accumulated job.
func (b *Buffer) Bytes() []byte { return bytes.Clone(b.buf.Bytes()) }

// Len reports the number of bytes written so far.
func (b *Buffer) Len() int { return b.buf.Len() }
