package wire

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/slipnote/internal/config"
	"github.com/mithrel/slipnote/internal/db"
	"github.com/mithrel/slipnote/internal/escpos"
	"github.com/mithrel/slipnote/internal/logging"
	"github.com/mithrel/slipnote/internal/printer"
	"github.com/mithrel/slipnote/internal/render"
	"github.com/mithrel/slipnote/pkg/api"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     zerolog.Logger
	Store   *db.Store
	Spooler printer.Spooler
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := logging.GetLogger("app")
	store, err := db.Open(ctx, config.ResolveDBPath(v))
	if err != nil {
		return nil, err
	}
	spooler, err := printer.NewSpooler(v.GetString("printer.spooler"))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.Debug().Str("db", config.ResolveDBPath(v)).Str("spooler", v.GetString("printer.spooler")).Msg("app ready")
	return &App{
		Cfg:     v,
		Log:     logger,
		Store:   store,
		Spooler: spooler,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Store.Close()
}

// PaperWidth resolves the width for a command: an explicit flag value wins,
// then the saved printer settings, then the paper_width option.
func (a *App) PaperWidth(ctx context.Context, flag int) int {
	if flag != 0 {
		return flag
	}
	if st, err := a.Store.Settings.GetPrinterSettings(ctx); err == nil && !st.LastSaved.IsZero() && st.PaperWidth > 0 {
		return st.PaperWidth
	}
	if w := a.Cfg.GetInt("paper_width"); w > 0 {
		return w
	}
	return api.DefaultPaperWidth
}

// PrinterOptions builds render options for a job at the given width. An empty
// codePage uses printer.codepage.
func (a *App) PrinterOptions(width int, codePage string) (render.PrinterOptions, error) {
	if codePage == "" {
		codePage = a.Cfg.GetString("printer.codepage")
	}
	cp, err := escpos.ParseCodePage(codePage)
	if err != nil {
		return render.PrinterOptions{}, err
	}
	return render.PrinterOptions{PaperWidth: width, CodePage: cp}, nil
}

// PrinterName resolves the target printer: explicit name, then the saved
// default, then printer.name.
func (a *App) PrinterName(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	st, err := a.Store.Settings.GetPrinterSettings(ctx)
	if err != nil {
		return "", err
	}
	if st.DefaultPrinter != "" {
		return st.DefaultPrinter, nil
	}
	if name := a.Cfg.GetString("printer.name"); name != "" {
		return name, nil
	}
	return "", printer.ErrNoPrinter
}
