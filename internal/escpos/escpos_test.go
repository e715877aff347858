package escpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBytes(t *testing.T) {
	tests := []struct {
		cmd  Command
		want []byte
	}{
		{Init, []byte{0x1B, 0x40}},
		{BoldOn, []byte{0x1B, 0x45, 0x01}},
		{BoldOff, []byte{0x1B, 0x45, 0x00}},
		{DoubleSize, []byte{0x1B, 0x21, 0x30}},
		{NormalSize, []byte{0x1B, 0x21, 0x00}},
		{AlignLeft, []byte{0x1B, 0x61, 0x00}},
		{AlignCenter, []byte{0x1B, 0x61, 0x01}},
		{AlignRight, []byte{0x1B, 0x61, 0x02}},
		{Cut, []byte{0x1D, 0x56, 0x41, 0x00}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.cmd.Bytes(), tc.cmd.String())
	}
}

func TestEveryCommandHasBytesAndName(t *testing.T) {
	for _, c := range Commands() {
		assert.NotEmpty(t, c.Bytes(), "command %d", int(c))
		assert.NotContains(t, c.String(), "command(", "command %d", int(c))
	}
	assert.Nil(t, Command(-1).Bytes())
	assert.Nil(t, numCommands.Bytes())
}

func TestParseCodePage(t *testing.T) {
	cp, err := ParseCodePage("")
	require.NoError(t, err)
	assert.Equal(t, CP437, cp)

	cp, err = ParseCodePage(" CP858 ")
	require.NoError(t, err)
	assert.Equal(t, CP858, cp)

	_, err = ParseCodePage("ebcdic")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cp   CodePage
		in   string
		want []byte
	}{
		{"ascii passthrough", CP437, "Hi\n", []byte("Hi\n")},
		{"pound in cp437", CP437, "£5", []byte{0x9C, '5'}},
		{"pound in cp1252", CP1252, "£", []byte{0xA3}},
		{"euro in cp858", CP858, "€", []byte{0xD5}},
		{"euro transliterated in cp437", CP437, "€", []byte("EUR")},
		{"ellipsis transliterated", CP437, "wait…", []byte("wait...")},
		{"curly quotes", CP437, "“ok”", []byte(`"ok"`)},
		{"unknown rune", CP437, "☃", []byte("?")},
		{"utf8 untouched", UTF8, "£…", []byte("£…")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cp.Encode(tc.in))
		})
	}
}

func TestBufferInit(t *testing.T) {
	assert.Equal(t, []byte{0x1B, 0x40}, NewBuffer(CP437).Init().Bytes())
	assert.Equal(t, []byte{0x1B, 0x40}, NewBuffer(UTF8).Init().Bytes())
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x74, 19}, NewBuffer(CP858).Init().Bytes())
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x74, 16}, NewBuffer(CP1252).Init().Bytes())
}

func TestBufferComposes(t *testing.T) {
	b := NewBuffer("").Command(BoldOn).Text("£").Command(BoldOff).Newlines(2)
	assert.Equal(t, []byte{0x1B, 0x45, 0x01, 0x9C, 0x1B, 0x45, 0x00, '\n', '\n'}, b.Bytes())
	assert.Equal(t, 9, b.Len())
}
