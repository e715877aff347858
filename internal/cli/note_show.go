package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/present"
)

func newNoteShowCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	var width int
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Display a note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := loadNote(cmd, app, args[0])
			if err != nil {
				return err
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI {
				return errors.Newf("invalid --output: %s", outputMode)
			}
			opts := present.Options{
				Mode:       mode,
				Headers:    !noHeaders,
				PaperWidth: app.PaperWidth(cmd.Context(), width),
			}
			return renderNote(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), n, opts)
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|pretty|json|ndjson|receipt")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	cmd.Flags().IntVar(&width, "width", 0, "paper width for receipt output (0 uses config)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "pretty", "json", "ndjson", "receipt"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
