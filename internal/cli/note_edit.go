package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/db"
	"github.com/mithrel/slipnote/internal/editor"
	"github.com/mithrel/slipnote/pkg/api"
)

func newNoteEditCmd() *cobra.Command {
	var keepTmp bool
	var force bool
	var title string
	cmd := &cobra.Command{
		Use:               "edit <id>",
		Short:             "Edit an existing note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			cur, err := loadNote(cmd, app, args[0])
			if err != nil {
				return err
			}

			body, hasBody, err := readContent(cmd)
			if err != nil {
				return err
			}
			if hasBody || cmd.Flags().Changed("title") {
				next := cur
				if hasBody {
					next.Body = body
				}
				if cmd.Flags().Changed("title") {
					next.Title = strings.TrimSpace(title)
				}
				return saveEdit(cmd, cur, next)
			}

			path, err := editor.PathForID(cur.ID)
			if err != nil {
				return err
			}
			next, changed, err := editNote(path, cur, keepTmp)
			if err != nil {
				return err
			}
			if !changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
				return nil
			}
			if next.Title == "" && strings.TrimSpace(next.Body) == "" {
				if app.Cfg.GetBool("editor.delete_empty") {
					if err := app.Store.Notes.DeleteNote(cmd.Context(), cur.ID); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: empty content.\n", cur.ID)
					return nil
				}
				return errors.New("edit aborted: empty content")
			}

			err = saveEdit(cmd, cur, next)
			if !errors.Is(err, db.ErrConflict) {
				return err
			}

			// Conflict: show what moved and optionally reopen against the latest.
			latest, gerr := app.Store.Notes.GetNote(cmd.Context(), cur.ID)
			if gerr != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Conflict: note has changed since you opened it.")
			if next.Title != latest.Title {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- stored title: %q\n+ local  title: %q\n", latest.Title, next.Title)
			}
			if next.Body != latest.Body {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(body differs)")
			}
			if !force {
				return errors.WithHint(err, "rerun with --force to edit the latest version")
			}
			again, changed, err := editNote(path, latest, keepTmp)
			if err != nil {
				return err
			}
			if !changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
				return nil
			}
			return saveEdit(cmd, latest, again)
		},
	}
	addNoteContentFlags(cmd)
	cmd.Flags().StringVar(&title, "title", "", "replace the title (skips the editor)")
	cmd.Flags().BoolVar(&keepTmp, "keep-tmp", false, "keep temporary editor file after save")
	cmd.Flags().BoolVar(&force, "force", false, "on conflict, reopen against latest for another edit")
	return cmd
}

// editNote opens cur in the editor and returns the edited copy.
func editNote(path string, cur api.Note, keepTmp bool) (api.Note, bool, error) {
	initial := []byte(editor.ComposeContent(cur.Title, cur.Body))
	out, changed, err := editor.OpenAt(path, initial)
	if err != nil {
		return api.Note{}, false, err
	}
	if !keepTmp {
		_ = os.Remove(path)
	}
	if !changed {
		return cur, false, nil
	}
	next := cur
	next.Title, next.Body = editor.ParseEditedNote(string(out))
	if next.Title == "" {
		next.Title = editor.FirstLine(next.Body)
	}
	return next, true, nil
}

// saveEdit stores next over cur with a version check.
func saveEdit(cmd *cobra.Command, cur, next api.Note) error {
	app := getApp(cmd)
	next.Version = cur.Version + 1
	next.Touch(time.Now())
	saved, err := app.Store.Notes.UpdateNoteCAS(cmd.Context(), next, cur.Version)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", saved.ID, saved.Title)
	return nil
}
