package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/slipnote/pkg/api"
)

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{"plain": ModePlain, "pretty": ModePretty, "json": ModeJSON, "ndjson": ModeNDJSON, "receipt": ModeReceipt, "tui": ModeTUI} {
		got, ok := ParseMode(s)
		assert.True(t, ok, s)
		assert.Equal(t, want, got, s)
	}
	_, ok := ParseMode("yaml")
	assert.False(t, ok)
}

func TestRenderNote(t *testing.T) {
	n := api.Note{ID: "n1", Title: "T", Body: "<center>hi</center>"}
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, RenderNote(ctx, &buf, n, Options{Mode: ModeJSON}))
	assert.Contains(t, buf.String(), `"id":"n1"`)

	buf.Reset()
	require.NoError(t, RenderNote(ctx, &buf, n, Options{Mode: ModeReceipt, PaperWidth: 6}))
	assert.Contains(t, buf.String(), "  hi  ")

	assert.Error(t, RenderNote(ctx, &buf, n, Options{Mode: ModeTUI}))
	assert.Error(t, RenderNote(ctx, &buf, n, Options{Mode: ModeReceipt}))
}

func TestRenderNotesPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderNotes(context.Background(), &buf, []api.Note{{ID: "a", Title: "first"}}, Options{Mode: ModePlain, Headers: true}))
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "title")
}
