package cli

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/escpos"
	"github.com/mithrel/slipnote/internal/render"
)

func newRenderCmd() *cobra.Command {
	var targetName string
	var width int
	var title string
	var codePage string
	var out string
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render markup from a file or stdin without storing it",
		Long: `Render reads note markup and writes either the HTML preview or the
ESC/POS print job. ESC/POS output is binary and is refused on a terminal;
redirect it or use -o.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			target, ok := render.ParseTarget(targetName)
			if !ok {
				return errors.Newf("invalid --target: %s (want preview or escpos)", targetName)
			}

			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			var data []byte
			var err error
			if src == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(src)
			}
			if err != nil {
				return errors.Wrapf(err, "read %s", src)
			}

			opts, err := app.PrinterOptions(app.PaperWidth(cmd.Context(), width), codePage)
			if err != nil {
				return err
			}
			opts.Title = title
			rendered, err := render.Render(target, string(data), opts)
			if err != nil {
				return err
			}
			if target == render.TargetPreview {
				rendered = append(rendered, '\n')
			}

			if out != "" && out != "-" {
				if err := os.WriteFile(out, rendered, 0o600); err != nil {
					return errors.Wrapf(err, "write %s", out)
				}
				return nil
			}
			if target == render.TargetPrinterBytes && isTerminalWriter(cmd.OutOrStdout()) {
				return errors.WithHint(errors.New("refusing to write ESC/POS bytes to a terminal"), "redirect stdout or pass -o <file>")
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}
	cmd.Flags().StringVarP(&targetName, "target", "t", "preview", "output: preview (HTML) or escpos")
	cmd.Flags().IntVar(&width, "width", 0, "paper width in characters (0 uses config)")
	cmd.Flags().StringVar(&title, "title", "", "title printed above the timestamp (escpos)")
	cmd.Flags().StringVar(&codePage, "codepage", "", "character table: cp437|cp858|cp1252|utf8 (default from config)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"preview", "escpos"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("codepage", completeCodePages)
	return cmd
}

func completeCodePages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, cp := range escpos.CodePages() {
		if strings.HasPrefix(string(cp), strings.ToLower(toComplete)) {
			out = append(out, string(cp))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
