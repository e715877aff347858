package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/mithrel/slipnote/internal/present"
	"github.com/mithrel/slipnote/pkg/api"
)

const defaultPager = "less -FRSX"

func renderNotes(ctx context.Context, out, errOut io.Writer, notes []api.Note, opts present.Options) error {
	if opts.Mode == present.ModeTUI {
		return present.RenderNotes(ctx, out, notes, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderNotes(ctx, w, notes, opts)
	})
}

func renderNote(ctx context.Context, out, errOut io.Writer, n api.Note, opts present.Options) error {
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderNote(ctx, w, n, opts)
	})
}

// isTerminalWriter reports whether w is a terminal.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
