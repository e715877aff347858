package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/slipnote/internal/escpos"
	"github.com/mithrel/slipnote/pkg/api"
)

// CheckConfigValidity reports every invalid setting in one error.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string
	add := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required")
	}
	if w := v.GetInt("paper_width"); w < MinPaperWidth || w > MaxPaperWidth {
		add("paper_width must be between %d and %d, got %d", MinPaperWidth, MaxPaperWidth, w)
	}
	if _, err := escpos.ParseCodePage(v.GetString("printer.codepage")); err != nil {
		add("printer.codepage: %v", err)
	}
	switch s := v.GetString("printer.spooler"); s {
	case "lp", "device":
	default:
		add("printer.spooler must be lp or device, got %q", s)
	}
	if v.GetString("printer.spooler") == "device" && strings.TrimSpace(v.GetString("printer.name")) == "" {
		add("printer.name is required when printer.spooler is device")
	}
	if _, _, err := net.SplitHostPort(v.GetString("server.addr")); err != nil {
		add("server.addr must be host:port, got %q", v.GetString("server.addr"))
	}
	if _, ok := api.ParseSortField(v.GetString("list.sort_field")); !ok {
		add("list.sort_field must be lastModified, title or size, got %q", v.GetString("list.sort_field"))
	}
	if _, ok := api.ParseSortOrder(v.GetString("list.sort_order")); !ok {
		add("list.sort_order must be asc or desc, got %q", v.GetString("list.sort_order"))
	}
	if _, err := zerolog.ParseLevel(v.GetString("log.level")); err != nil {
		add("log.level: unknown level %q", v.GetString("log.level"))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Newf("invalid config:\n  - %s", strings.Join(problems, "\n  - "))
}
