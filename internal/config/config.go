// Package config resolves slipnote settings from defaults, config.toml and
// SLIPNOTE_* environment variables.
package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const appName = "slipnote"

// Paper width bounds accepted by the config layer. The renderer itself only
// requires a positive width.
const (
	MinPaperWidth = 32
	MaxPaperWidth = 80
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns every option with its default and meaning. It is
// the single source for Viper defaults, the generated TOML and validation of
// known keys.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/slipnote.db"},
		{Key: "paper_width", Default: 48, Comment: "Characters per printed line (32-80; 48 fits 80 mm paper)"},

		{Key: "printer.name", Default: "", Comment: "Printer queue or device; empty uses the saved default printer"},
		{Key: "printer.codepage", Default: "cp437", Comment: "Printer character table: cp437, cp858, cp1252 or utf8"},
		{Key: "printer.spooler", Default: "lp", Comment: "How jobs reach the printer: lp (CUPS queue) or device (path or tcp://host:9100)"},

		{Key: "server.addr", Default: "127.0.0.1:7466", Comment: "Listen address for the preview server"},
		{Key: "server.token", Default: "", Comment: "Bearer token required by the preview server API; empty disables auth"},

		{Key: "list.sort_field", Default: "lastModified", Comment: "Default note ordering: lastModified, title or size"},
		{Key: "list.sort_order", Default: "desc", Comment: "Default ordering direction: asc or desc"},

		{Key: "log.level", Default: "warn", Comment: "Log level: trace, debug, info, warn or error"},

		{Key: "editor.delete_empty", Default: true, Comment: "Delete note if editor exits with no content"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine; defaults and env still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(err, "read config")
		}
	}

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/slipnote or ~/.local/share/slipnote.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// ResolveDBPath returns the sqlite file under data_dir, expanding a leading ~.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, appName+".db")
}
