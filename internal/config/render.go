package config

import (
	"fmt"
	"strings"
)

type tomlSection struct {
	name string
	opts []ConfigOption
}

// splitSections groups options by their dotted prefix, preserving the order
// of GetConfigOptions. Top-level options come back under the "" section.
func splitSections(opts []ConfigOption) []tomlSection {
	var out []tomlSection
	index := map[string]int{}
	for _, o := range opts {
		section, key := "", o.Key
		if i := strings.IndexByte(o.Key, '.'); i >= 0 {
			section, key = o.Key[:i], o.Key[i+1:]
		}
		i, ok := index[section]
		if !ok {
			i = len(out)
			index[section] = i
			out = append(out, tomlSection{name: section})
		}
		out[i].opts = append(out[i].opts, ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return out
}

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	lines := []string{"# slipnote configuration (TOML)", ""}
	for _, s := range splitSections(GetConfigOptions()) {
		if s.name != "" {
			lines = append(lines, "["+s.name+"]")
		}
		for _, o := range s.opts {
			writeTOMLOption(&lines, o.Key, o.Default, o.Comment)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML merges missing defaults into their tables of an existing TOML
// document and comments out keys that are no longer known. It reports whether
// anything changed.
func UpdateTOML(existing string) (string, bool) {
	known := make(map[string]bool)
	for _, o := range GetConfigOptions() {
		known[o.Key] = true
	}

	seen := make(map[string]bool)
	section := ""
	out := make([]string, 0)
	changed := false
	for _, line := range strings.Split(existing, "\n") {
		trim := strings.TrimSpace(line)
		if isSectionHeader(trim) {
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		full := key
		if section != "" {
			full = section + "." + key
		}
		seen[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema", indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
	}

	doc := strings.Join(out, "\n")
	for _, o := range GetConfigOptions() {
		if !seen[o.Key] {
			doc = upsert(doc, o.Key, o.Default, o.Comment)
			changed = true
		}
	}
	return doc, changed
}

func parseTOMLKey(line string) (string, bool) {
	trim := strings.TrimSpace(line)
	if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
		return "", false
	}
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func isSectionHeader(trim string) bool {
	return strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]")
}

func writeTOMLOption(lines *[]string, key string, value any, comment string) {
	if comment != "" {
		*lines = append(*lines, "# "+comment)
	}
	*lines = append(*lines, key+" = "+tomlValue(value), "")
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
