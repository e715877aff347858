package cli

import (
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/present/format"
	"github.com/mithrel/slipnote/internal/present/tui"
	"github.com/mithrel/slipnote/internal/render"
)

func newPreviewCmd() *cobra.Command {
	var width int
	var html bool
	var interactive bool
	cmd := &cobra.Command{
		Use:               "preview <id>",
		Short:             "Preview a note as it will print",
		Long:              "Preview draws the note as a receipt in the terminal. --html prints the styled HTML preview instead; --tui opens a scrollable view.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if html && interactive {
				return errors.New("choose either --html or --tui")
			}
			app := getApp(cmd)
			n, err := loadNote(cmd, app, args[0])
			if err != nil {
				return err
			}
			w := app.PaperWidth(cmd.Context(), width)
			now := time.Now()
			if html {
				page, err := render.PreviewNote(n, w, now)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), page+"\n")
				return err
			}
			text := render.ComposeNoteText(n.Title, n.Body, now)
			if interactive {
				receipt, err := format.Receipt(text, w)
				if err != nil {
					return err
				}
				return tui.RunPreview(cmd.Context(), n.Title, receipt)
			}
			return format.WriteReceipt(cmd.OutOrStdout(), text, w)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "paper width in characters (0 uses config)")
	cmd.Flags().BoolVar(&html, "html", false, "print the HTML preview")
	cmd.Flags().BoolVar(&interactive, "tui", false, "open an interactive, scrollable preview")
	return cmd
}
