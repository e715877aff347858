package cli

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/db"
	"github.com/mithrel/slipnote/internal/util"
	"github.com/mithrel/slipnote/internal/wire"
	"github.com/mithrel/slipnote/pkg/api"
)

// newNoteCmd defines the parent "note" command.
// Running "slipnote note" without subcommands adds a note.
func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note [title]",
		Short: "Work with notes (default: add)",
		Args:  cobra.ArbitraryArgs,
		RunE:  runNoteAdd,
	}
	addNoteContentFlags(cmd)

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNoteShowCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteDeleteCmd())
	cmd.AddCommand(newNoteExportCmd())

	return cmd
}

// loadNote resolves an id or unique id prefix to a stored note.
func loadNote(cmd *cobra.Command, app *wire.App, ref string) (api.Note, error) {
	id, err := db.ResolveNoteID(cmd.Context(), app.Store.Notes, ref)
	if err != nil {
		return api.Note{}, err
	}
	return app.Store.Notes.GetNote(cmd.Context(), id)
}

// readContent returns --body, or the contents of --file ("-" reads stdin).
// ok is false when neither flag was given.
func readContent(cmd *cobra.Command) (content string, ok bool, err error) {
	if cmd.Flags().Changed("body") {
		body, _ := cmd.Flags().GetString("body")
		return body, true, nil
	}
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return "", false, nil
	}
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read %s", path)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), true, nil
}

func addNoteContentFlags(cmd *cobra.Command) {
	cmd.Flags().String("body", "", "note body markup (skips the editor)")
	cmd.Flags().StringP("file", "f", "", "read the note body from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("body", "file")
}

// completeNoteIDs offers stored note ids, fuzzy matched against the input.
func completeNoteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	app, ok := lookupApp(cmd)
	if !ok {
		// Completion requests skip the persistent hooks.
		if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		app, ok = lookupApp(cmd)
		if ok {
			defer app.Close()
		}
	}
	if !ok || app.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	notes, err := app.Store.Notes.ListNotes(cmd.Context(), api.ListQuery{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, 0, len(notes))
	titles := make(map[string]string, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
		titles[n.ID] = n.Title
	}
	matches := util.ScoreCompletions(toComplete, ids, 20)
	out := make([]string, 0, len(matches))
	for _, id := range matches {
		if t := titles[id]; t != "" {
			out = append(out, id+"\t"+t)
			continue
		}
		out = append(out, id)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
