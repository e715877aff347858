package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	applyDefaults(v)
	v.Set("data_dir", "/tmp/slipnote")
	return v
}

func TestCheckConfigValidityValid(t *testing.T) {
	require.NoError(t, CheckConfigValidity(validViper()))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("paper_width", 12)
	v.Set("printer.codepage", "ebcdic")
	v.Set("printer.spooler", "device")
	v.Set("printer.name", "")
	v.Set("server.addr", "nowhere")
	v.Set("list.sort_field", "colour")
	v.Set("list.sort_order", "sideways")
	v.Set("log.level", "loud")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"data_dir is required",
		"paper_width must be between 32 and 80, got 12",
		"printer.codepage",
		"printer.name is required when printer.spooler is device",
		"server.addr must be host:port",
		"list.sort_field must be",
		"list.sort_order must be asc or desc",
		"log.level: unknown level",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("paper_width = 32\n[printer]\nname = \"file-printer\"\n"), 0o600))
	t.Setenv("SLIPNOTE_PRINTER_NAME", "env-printer")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, 32, v.GetInt("paper_width"))
	assert.Equal(t, "env-printer", v.GetString("printer.name"))
	assert.Equal(t, "cp437", v.GetString("printer.codepage"))
	assert.NotEmpty(t, v.GetString("data_dir"))
}

func TestResolveDBPath(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "/var/lib/slip")
	assert.Equal(t, "/var/lib/slip/slipnote.db", ResolveDBPath(v))
}

func TestRenderDefaultTOMLParses(t *testing.T) {
	out := RenderDefaultTOML()
	assert.Contains(t, out, "paper_width = 48")
	assert.Contains(t, out, "[printer]")
	assert.Contains(t, out, `codepage = "cp437"`)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	for _, o := range GetConfigOptions() {
		assert.True(t, v.IsSet(o.Key), o.Key)
	}
}

func TestUpdateTOML(t *testing.T) {
	in := "paper_width = 40\nlegacy = true\n[printer]\nname = \"kitchen\"\n"
	out, changed := UpdateTOML(in)
	require.True(t, changed)
	assert.Contains(t, out, "paper_width = 40")
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# legacy = true")
	assert.Contains(t, out, `name = "kitchen"`)
	assert.Contains(t, out, "name = \"kitchen\"\n# Printer character table: cp437, cp858, cp1252 or utf8\ncodepage = \"cp437\"")
	assert.Equal(t, 1, strings.Count(out, "[printer]"))

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, 40, v.GetInt("paper_width"))
	assert.Equal(t, "kitchen", v.GetString("printer.name"))
	assert.Equal(t, "127.0.0.1:7466", v.GetString("server.addr"))

	again, changed := UpdateTOML(RenderDefaultTOML())
	assert.False(t, changed)
	assert.Equal(t, RenderDefaultTOML(), again)
}

func TestSetOption(t *testing.T) {
	in := "paper_width = 48\n\n[printer]\nname = \"old\"\n\n[log]\nlevel = \"warn\"\n"

	out, err := SetOption(in, "printer.name", "kitchen")
	require.NoError(t, err)
	assert.Contains(t, out, `name = "kitchen"`)
	assert.NotContains(t, out, `"old"`)

	out, err = SetOption(out, "printer.codepage", "cp858")
	require.NoError(t, err)
	assert.Contains(t, out, "[printer]\nname = \"kitchen\"\ncodepage = \"cp858\"\n")

	out, err = SetOption(out, "server.addr", ":9000")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "[server]\naddr = \":9000\""), out)

	out, err = SetOption(out, "editor.delete_empty", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "delete_empty = false")

	out, err = SetOption("[printer]\nname = \"x\"\n", "paper_width", "40")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "paper_width = 40\n[printer]"), out)

	_, err = SetOption(in, "paper_width", "wide")
	assert.Error(t, err)
	_, err = SetOption(in, "nope", "1")
	assert.Error(t, err)
}
