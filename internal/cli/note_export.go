package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/present/format"
)

func newNoteExportCmd() *cobra.Command {
	var out string
	var dir string
	cmd := &cobra.Command{
		Use:               "export <id>",
		Short:             "Export a note as a plain text file",
		Long:              "Export writes \"Title:\" and \"Date:\" header lines, a blank line and the raw note markup.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := loadNote(cmd, app, args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := format.WriteExport(&buf, n); err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			path := out
			if path == "" {
				path = filepath.Join(dir, format.ExportFileName(n))
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				return errors.Wrapf(err, "export %s", n.ID)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", n.ID, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file, - for stdout (default <dir>/<title>.txt)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for the default file name")
	return cmd
}
