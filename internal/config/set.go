package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// SetOption sets key (dotted, e.g. "printer.name") to raw inside an existing
// TOML document, replacing the current assignment or adding it to the right
// table. raw is coerced to the type of the option's default.
func SetOption(existing, key, raw string) (string, error) {
	for _, o := range GetConfigOptions() {
		if o.Key != key {
			continue
		}
		value, err := coerce(o.Default, raw)
		if err != nil {
			return "", errors.Wrapf(err, "config key %s", key)
		}
		return upsert(existing, key, value, ""), nil
	}
	return "", errors.Newf("unknown config key %q", key)
}

// upsert replaces the assignment of a dotted key or inserts it, preceded by
// comment when set, at the end of its table.
func upsert(doc, key string, value any, comment string) string {
	section, name := "", key
	if i := strings.IndexByte(key, '.'); i >= 0 {
		section, name = key[:i], key[i+1:]
	}
	assignment := name + " = " + tomlValue(value)
	block := []string{assignment}
	if comment != "" {
		block = []string{"# " + comment, assignment}
	}

	lines := strings.Split(doc, "\n")
	current := ""
	firstHeader := -1
	// insertAt is just past the last assignment of the table; -1 until the
	// table is found.
	insertAt := -1
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		if isSectionHeader(trim) {
			if firstHeader < 0 {
				firstHeader = i
			}
			current = strings.TrimSpace(trim[1 : len(trim)-1])
			if current == section {
				insertAt = i + 1
			}
			continue
		}
		if current != section {
			continue
		}
		k, ok := parseTOMLKey(line)
		if !ok {
			continue
		}
		if k == name {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines[i] = indent + assignment
			return strings.Join(lines, "\n")
		}
		insertAt = i + 1
	}

	switch {
	case section == "":
		// Top-level keys must precede the first table header.
		at := len(lines)
		if firstHeader >= 0 {
			at = firstHeader
		}
		lines = insertLines(lines, at, block)
	case insertAt >= 0:
		lines = insertLines(lines, insertAt, block)
	default:
		if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) != "" {
			lines = append(lines, "")
		}
		lines = append(lines, "["+section+"]")
		lines = append(lines, block...)
	}
	return strings.Join(lines, "\n")
}

func insertLines(lines []string, at int, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	return append(out, lines[at:]...)
}

func coerce(def any, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch def.(type) {
	case bool:
		return strconv.ParseBool(raw)
	case int:
		return strconv.Atoi(raw)
	default:
		return raw, nil
	}
}
