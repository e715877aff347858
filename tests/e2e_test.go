package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/slipnote/internal/cli"
	"github.com/mithrel/slipnote/internal/config"
	"github.com/mithrel/slipnote/internal/server"
	"github.com/mithrel/slipnote/internal/wire"
)

// runCLI executes the CLI with the given args and returns stdout, stderr, and error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestE2E_NotePreviewAndPrint(t *testing.T) {
	// 1. Setup environment
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(tmpDir, "run"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// The device spooler appends to an existing file, which stands in for
	// /dev/usb/lp0.
	device := filepath.Join(tmpDir, "lp0")
	require.NoError(t, os.WriteFile(device, nil, 0o600))

	cfgPath := filepath.Join(tmpDir, "config.toml")
	cfgContent := "data_dir = \"" + dataDir + "\"\n"
	cfgContent += "paper_width = 32\n\n"
	cfgContent += "[printer]\n"
	cfgContent += "spooler = \"device\"\n"
	cfgContent += "name = \"" + device + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o600))

	// 2. Add a note through the CLI
	out, _, err := runCLI(t, "--config", cfgPath, "note", "add", "Shopping list",
		"--body", "<center><bold>Market</bold></center>\n<divider>\neggs, flour and a very long line that must wrap")
	require.NoError(t, err)
	id, title, ok := strings.Cut(strings.TrimSpace(out), "\t")
	require.True(t, ok, out)
	assert.Equal(t, "Shopping list", title)

	// 3. Serve the same store over HTTP
	ctx := context.Background()
	v := viper.New()
	v.SetConfigFile(cfgPath)
	require.NoError(t, config.Load(ctx, v))
	app, err := wire.BuildApp(ctx, v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ts := httptest.NewServer(server.New(app).Router())
	t.Cleanup(ts.Close)

	t.Run("List", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/notes")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var notes []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
		require.Len(t, notes, 1)
		assert.Equal(t, id, notes[0].ID)
	})

	t.Run("Preview", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/notes/" + id + "/preview")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		page := string(body)
		assert.Contains(t, page, "Shopping list")
		assert.Contains(t, page, "Market")
		assert.Contains(t, page, "text-align")
		assert.NotEmpty(t, resp.Header.Get("ETag"))
	})

	t.Run("ESC/POS matches CLI", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/v1/notes/" + id + "/escpos")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		served, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		file := filepath.Join(tmpDir, "job.bin")
		_, _, err = runCLI(t, "--config", cfgPath, "print", id, "-o", file)
		require.NoError(t, err)
		local, err := os.ReadFile(file)
		require.NoError(t, err)

		// Everything after the timestamp line must be identical.
		_, servedBody, ok := bytes.Cut(served, []byte("\n\n\x1ba\x01"))
		require.True(t, ok)
		_, localBody, ok := bytes.Cut(local, []byte("\n\n\x1ba\x01"))
		require.True(t, ok)
		assert.Equal(t, localBody, servedBody)
		assert.True(t, bytes.HasSuffix(served, []byte("\x1dVA\x00")))
	})

	t.Run("Print to device", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/v1/notes/"+id+"/print", "", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := os.ReadFile(device)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x1b@")))
		assert.Contains(t, string(data), "Shopping list")
		assert.Contains(t, string(data), "\x1bE\x01Market\x1bE\x00")
	})
}
