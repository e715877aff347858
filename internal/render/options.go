package render

import (
	"strings"
	"time"

	"github.com/mithrel/slipnote/internal/escpos"
	"github.com/mithrel/slipnote/pkg/api"
)

// Target selects the translator that consumes the wrapped text.
type Target int

const (
	TargetPreview Target = iota
	TargetPrinterBytes
)

// ParseTarget parses "preview" (or "html") and "escpos" (or "printer").
func ParseTarget(s string) (Target, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preview", "html":
		return TargetPreview, true
	case "escpos", "printer", "bytes":
		return TargetPrinterBytes, true
	default:
		return TargetPreview, false
	}
}

func (t Target) String() string {
	if t == TargetPrinterBytes {
		return "escpos"
	}
	return "preview"
}

// PrinterOptions configures a print job.
type PrinterOptions struct {
	PaperWidth int
	// Title is printed double size above the timestamp when not blank.
	Title    string
	CodePage escpos.CodePage
	// Now is sampled once per job; nil means time.Now.
	Now func() time.Time
}

func (o PrinterOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// DefaultOptions returns options for the standard 80 mm paper width.
func DefaultOptions() PrinterOptions {
	return PrinterOptions{PaperWidth: api.DefaultPaperWidth, CodePage: escpos.CP437}
}

// PrintedLine is the timestamp line that heads every printout.
func PrintedLine(t time.Time) string {
	return "Printed " + t.Format("02/01/2006") + " at " + t.Format("15:04")
}
