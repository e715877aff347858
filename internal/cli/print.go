package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/logging"
	"github.com/mithrel/slipnote/internal/printer"
	"github.com/mithrel/slipnote/internal/render"
	"github.com/mithrel/slipnote/internal/wire"
	"github.com/mithrel/slipnote/pkg/api"
)

type printRequest struct {
	Printer  string
	Width    int
	CodePage string
}

// printNote renders n and hands it to the spooler. It returns the printer
// used and the job size.
func printNote(ctx context.Context, app *wire.App, n api.Note, req printRequest) (string, int, error) {
	job, err := noteJob(ctx, app, n, req)
	if err != nil {
		return "", 0, err
	}
	name, err := app.PrinterName(ctx, req.Printer)
	if err != nil {
		return "", 0, err
	}
	done := logging.LogOperationStart(app.Log, "print")
	defer done()
	if err := app.Spooler.Print(ctx, printer.Job{Printer: name, Data: job}); err != nil {
		return "", 0, err
	}
	return name, len(job), nil
}

func noteJob(ctx context.Context, app *wire.App, n api.Note, req printRequest) ([]byte, error) {
	opts, err := app.PrinterOptions(app.PaperWidth(ctx, req.Width), req.CodePage)
	if err != nil {
		return nil, err
	}
	return render.PrintNote(n, opts)
}

func newPrintCmd() *cobra.Command {
	var req printRequest
	var out string
	cmd := &cobra.Command{
		Use:               "print <id>",
		Short:             "Print a note on a thermal printer",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := loadNote(cmd, app, args[0])
			if err != nil {
				return err
			}
			if out != "" {
				job, err := noteJob(cmd.Context(), app, n, req)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, job, 0o600); err != nil {
					return errors.Wrapf(err, "write %s", out)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(job), out)
				return nil
			}
			name, size, err := printNote(cmd.Context(), app, n, req)
			if err != nil {
				if errors.Is(err, printer.ErrNoPrinter) {
					return errors.WithHint(err, "pass --printer, run `slipnote printers use <name>`, or set printer.name")
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %s (%d bytes) to %s\n", n.ID, size, name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Printer, "printer", "p", "", "printer queue or device (default: saved printer)")
	cmd.Flags().IntVar(&req.Width, "width", 0, "paper width in characters (0 uses config)")
	cmd.Flags().StringVar(&req.CodePage, "codepage", "", "character table: cp437|cp858|cp1252|utf8 (default from config)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the ESC/POS job to a file instead of printing")
	_ = cmd.RegisterFlagCompletionFunc("codepage", completeCodePages)
	return cmd
}
