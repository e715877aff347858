// Package printer finds local printers and hands print jobs to them.
package printer

import (
	"bufio"
	"context"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/logging"
)

// ErrNoPrinter means no printer was named and none is saved as default.
var ErrNoPrinter = errors.New("no printer selected")

// Runner executes an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, errors.Wrapf(err, "%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, errors.Wrapf(err, "run %s", name)
	}
	return out, nil
}

// Discover lists installed printers: CUPS queues via lpstat, or Windows
// printers via wmic. A nil runner uses ExecRunner.
func Discover(ctx context.Context, run Runner) ([]string, error) {
	return discoverFor(ctx, runtime.GOOS, run)
}

func discoverFor(ctx context.Context, goos string, run Runner) ([]string, error) {
	if run == nil {
		run = ExecRunner
	}
	log := logging.GetLogger("printer")

	var (
		names []string
		err   error
	)
	if goos == "windows" {
		var out []byte
		out, err = run(ctx, "wmic", "printer", "get", "name", "/format:list")
		names = parseWMIC(string(out))
	} else {
		var out []byte
		out, err = run(ctx, "lpstat", "-p")
		names = parseLpstat(string(out))
	}
	if err != nil && len(names) == 0 {
		// lpstat exits non-zero when no destinations are configured.
		if strings.Contains(err.Error(), "No destinations added") {
			return []string{}, nil
		}
		return nil, errors.Wrap(err, "discover printers")
	}
	sort.Strings(names)
	log.Debug().Strs("printers", names).Msg("printers discovered")
	return names, nil
}

// parseLpstat extracts queue names from `lpstat -p` lines such as
// "printer TM_T20 is idle.  enabled since ...".
func parseLpstat(out string) []string {
	names := []string{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "printer" {
			names = append(names, fields[1])
		}
	}
	return names
}

// parseWMIC extracts names from `wmic printer get name /format:list` output,
// which holds "Name=<printer>" lines separated by blank lines.
func parseWMIC(out string) []string {
	names := []string{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if name, ok := strings.CutPrefix(line, "Name="); ok && strings.TrimSpace(name) != "" {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names
}
