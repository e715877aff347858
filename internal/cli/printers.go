package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/config"
	"github.com/mithrel/slipnote/internal/printer"
)

// discoverPrinters is replaced in tests.
var discoverPrinters = func(ctx context.Context) ([]string, error) {
	return printer.Discover(ctx, nil)
}

func newPrintersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printers",
		Short: "Find printers and choose the default",
	}
	cmd.AddCommand(newPrintersListCmd())
	cmd.AddCommand(newPrintersRefreshCmd())
	cmd.AddCommand(newPrintersUseCmd())
	return cmd
}

func newPrintersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show known printers and the saved default",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			st, err := app.Store.Settings.GetPrinterSettings(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(st.AvailablePrinters) == 0 {
				_, _ = fmt.Fprintln(w, "No printers known; run `slipnote printers refresh`.")
			}
			for _, name := range st.AvailablePrinters {
				marker := " "
				if name == st.DefaultPrinter {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", marker, name)
			}
			if st.DefaultPrinter != "" && !slices.Contains(st.AvailablePrinters, st.DefaultPrinter) {
				_, _ = fmt.Fprintf(w, "* %s (not found at last refresh)\n", st.DefaultPrinter)
			}
			_, _ = fmt.Fprintf(w, "paper width: %d\n", app.PaperWidth(cmd.Context(), 0))
			return nil
		},
	}
}

func newPrintersRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Discover installed printers and remember them",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			found, err := discoverPrinters(cmd.Context())
			if err != nil {
				return err
			}
			st, err := app.Store.Settings.GetPrinterSettings(cmd.Context())
			if err != nil {
				return err
			}
			st.AvailablePrinters = found
			if _, err := app.Store.Settings.SavePrinterSettings(cmd.Context(), st); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Found %d printer(s)\n", len(found))
			for _, name := range found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}

func newPrintersUseCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "use [name]",
		Short: "Save the default printer and paper width",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			app, ok := lookupApp(cmd)
			if !ok || app.Store == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			st, err := app.Store.Settings.GetPrinterSettings(cmd.Context())
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return st.AvailablePrinters, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			st, err := app.Store.Settings.GetPrinterSettings(cmd.Context())
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = strings.TrimSpace(args[0])
			} else if !cmd.Flags().Changed("width") {
				if name, err = choosePrinter(st.AvailablePrinters); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("width") {
				if width < config.MinPaperWidth || width > config.MaxPaperWidth {
					return errors.Newf("--width must be between %d and %d", config.MinPaperWidth, config.MaxPaperWidth)
				}
				st.PaperWidth = width
			}
			if name != "" {
				if len(st.AvailablePrinters) > 0 && !slices.Contains(st.AvailablePrinters, name) {
					app.Log.Warn().Str("printer", name).Msg("printer was not found at last refresh")
				}
				st.DefaultPrinter = name
			}
			saved, err := app.Store.Settings.SavePrinterSettings(cmd.Context(), st)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default printer: %s (width %d)\n", displayPrinter(saved.DefaultPrinter), saved.PaperWidth)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "paper width in characters to save")
	return cmd
}

func displayPrinter(name string) string {
	if name == "" {
		return "(none)"
	}
	return name
}

// choosePrinter asks for a printer interactively.
func choosePrinter(available []string) (string, error) {
	if len(available) == 0 {
		return "", errors.WithHint(errors.New("no printers known"), "run `slipnote printers refresh` or pass a name")
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return "", errors.New("printer name required when not running interactively")
	}
	var choice string
	opts := make([]huh.Option[string], 0, len(available))
	for _, name := range available {
		opts = append(opts, huh.NewOption(name, name))
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Default printer").
			Options(opts...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}
