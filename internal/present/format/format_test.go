package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hexops/autogold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/slipnote/pkg/api"
)

func sampleNote() api.Note {
	at := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	return api.Note{ID: "n1", Title: "Groceries", Body: "milk\teggs\nbread", Version: 2, CreatedAt: at, UpdatedAt: at}
}

func TestWritePlainNotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainNotes(&buf, []api.Note{sampleNote()}, true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id"))
	assert.Contains(t, lines[1], "Groceries")
	assert.True(t, strings.HasSuffix(lines[1], "15"), lines[1])
}

func TestWritePlainNoteIncludesBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlainNote(&buf, sampleNote(), false))
	assert.True(t, strings.HasSuffix(buf.String(), "\nmilk\teggs\nbread\n"))
}

func TestWriteJSONNotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONNotes(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSONNotes(&buf, []api.Note{sampleNote()}, true))
	var got []api.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Title)

	buf.Reset()
	require.NoError(t, WriteNDJSONNotes(&buf, []api.Note{sampleNote(), sampleNote()}))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestMarkupToMarkdown(t *testing.T) {
	got := MarkupToMarkdown("<bold><large>Title</large></bold>\n<center>mid</center>\n<divider>\n<bold>b</bold> <x>")
	autogold.Want("markdown", "**Title**  \nmid  \n\n\n---\n  \n**b** <x>").Equal(t, got)
}

func TestWritePrettyNote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrettyNote(&buf, sampleNote()))
	assert.Contains(t, buf.String(), "Groceries")
	assert.Contains(t, buf.String(), "bread")
}

func TestReceiptLines(t *testing.T) {
	lines, err := ReceiptLines("<center>hi</center>\n<right>r</right>\nplain text here\n<divider>\n<cut>", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"    hi    ",
		"         r",
		"plain text",
		"here      ",
		"──────────",
		"8<--------",
	}, lines)
	for _, l := range lines {
		assert.Equal(t, 10, lipgloss.Width(l))
	}

	_, err = ReceiptLines("x", 0)
	assert.Error(t, err)
}

func TestReceiptFramed(t *testing.T) {
	out, err := Receipt("<bold>ab</bold>", 4)
	require.NoError(t, err)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 8, lipgloss.Width(r), r)
	}
	assert.Contains(t, rows[1], "ab")

	var buf bytes.Buffer
	require.NoError(t, WriteReceipt(&buf, "<bold>ab</bold>", 4))
	assert.Equal(t, out+"\n", buf.String())
}

func TestWriteExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, sampleNote()))
	assert.Equal(t, "Title: Groceries\nDate: 2024-03-05T14:07:00Z\n\nmilk\teggs\nbread", buf.String())
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Shopping_list.txt", ExportFileName(api.Note{ID: "x", Title: " Shopping list "}))
	assert.Equal(t, "a_b.txt", ExportFileName(api.Note{ID: "x", Title: "a/b"}))
	assert.Equal(t, "x.txt", ExportFileName(api.Note{ID: "x"}))
}
