package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/db"
	"github.com/mithrel/slipnote/internal/present/format"
	"github.com/mithrel/slipnote/pkg/api"
)

func newNoteDeleteCmd() *cobra.Command {
	var yes bool
	var dry bool
	var filters FilterOpts
	cmd := &cobra.Command{
		Use:               "delete [id...]",
		Aliases:           []string{"rm"},
		Short:             "Delete notes by id or by filter",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			hasFilters := filters.Search != "" || filters.Since != "" || filters.Until != ""
			if len(args) > 0 && hasFilters {
				return errors.New("ids cannot be combined with filters")
			}
			if len(args) == 0 && !hasFilters {
				return errors.WithHint(errors.New("nothing to delete"), "pass note ids or a --search/--since/--until filter")
			}

			var notes []api.Note
			if len(args) > 0 {
				for _, ref := range args {
					n, err := loadNote(cmd, app, ref)
					if err != nil {
						return err
					}
					notes = append(notes, n)
				}
			} else {
				q, err := buildQuery(app, filters, time.Now())
				if err != nil {
					return err
				}
				if notes, err = app.Store.Notes.ListNotes(cmd.Context(), q); err != nil {
					return err
				}
			}

			if dry {
				return format.WritePlainNotes(cmd.OutOrStdout(), notes, true)
			}
			if len(notes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No notes matched.")
				return nil
			}
			if len(notes) > 1 || hasFilters {
				if err := confirmDelete(fmt.Sprintf("Delete %d notes?", len(notes)), "This will permanently delete the selected notes.", yes); err != nil {
					return err
				}
			}
			for _, n := range notes {
				if err := app.Store.Notes.DeleteNote(cmd.Context(), n.ID); err != nil && !errors.Is(err, db.ErrNotFound) {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\t%s\n", n.ID, n.Title)
			}
			return nil
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	cmd.Flags().BoolVar(&dry, "dry", false, "list what would be deleted without deleting")
	return cmd
}

func confirmDelete(title, desc string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return errors.New("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return errors.New("aborted")
	}
	return nil
}
