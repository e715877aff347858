package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/editor"
	"github.com/mithrel/slipnote/pkg/api"
)

// newNoteAddCmd registers `note add`, but doesn't own wiring; parent calls it.
func newNoteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new note",
		Long: `Add a new note.

With --body or --file the note is saved directly. A title alone saves an
empty note. With neither, $VISUAL or $EDITOR opens to compose it.`,
		Args: cobra.ArbitraryArgs,
		RunE: runNoteAdd, // shared with parent
	}
	addNoteContentFlags(cmd)
	return cmd
}

// runNoteAdd is the default behavior used by both parent RunE and `note add`.
func runNoteAdd(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)
	title := strings.TrimSpace(strings.Join(args, " "))

	body, hasBody, err := readContent(cmd)
	if err != nil {
		return err
	}

	if !hasBody && title == "" {
		var aborted bool
		title, body, aborted, err = composeInEditor(cmd)
		if err != nil {
			return err
		}
		if aborted {
			return nil
		}
	}
	if title == "" {
		title = editor.FirstLine(body)
	}
	if title == "" && strings.TrimSpace(body) == "" {
		return errors.New("note aborted: empty content")
	}

	n, err := app.Store.Notes.CreateNote(cmd.Context(), api.NewNote(title, body, time.Now()))
	if err != nil {
		return err
	}
	app.Log.Info().Str("id", n.ID).Msg("note added")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, n.Title)
	return nil
}

// composeInEditor opens an empty note template. aborted reports that the
// user left it unchanged or empty.
func composeInEditor(cmd *cobra.Command) (title, body string, aborted bool, err error) {
	path, err := editor.PathForID(api.NewID())
	if err != nil {
		return "", "", false, err
	}
	initial := []byte(editor.ComposeContent("", ""))
	out, changed, err := editor.OpenAt(path, initial)
	if err != nil {
		return "", "", false, err
	}
	_ = os.Remove(path)

	if !changed {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No edits; note not saved.")
		return "", "", true, nil
	}
	title, body = editor.ParseEditedNote(string(out))
	if title == "" && strings.TrimSpace(body) == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Note aborted: empty content.")
		return "", "", true, nil
	}
	return title, body, false, nil
}
