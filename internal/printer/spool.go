package printer

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/internal/logging"
)

// Job is a rendered print job addressed to one printer.
type Job struct {
	Printer string
	Data    []byte
}

// Spooler delivers jobs to printers.
type Spooler interface {
	Print(ctx context.Context, job Job) error
}

// NewSpooler returns the spooler named by kind: "lp" or "device".
func NewSpooler(kind string) (Spooler, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "lp":
		return &LPSpooler{}, nil
	case "device":
		return &DeviceSpooler{}, nil
	default:
		return nil, errors.Newf("unknown spooler %q (want lp or device)", kind)
	}
}

// LPSpooler submits raw jobs through the CUPS lp command.
type LPSpooler struct {
	// Run defaults to ExecRunner.
	Run Runner
	// TempDir defaults to os.TempDir.
	TempDir string
}

func (s *LPSpooler) Print(ctx context.Context, job Job) error {
	if strings.TrimSpace(job.Printer) == "" {
		return ErrNoPrinter
	}
	run := s.Run
	if run == nil {
		run = ExecRunner
	}

	f, err := os.CreateTemp(s.TempDir, "slipnote-*.bin")
	if err != nil {
		return errors.Wrap(err, "create spool file")
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(job.Data); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write spool file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close spool file")
	}

	if _, err := run(ctx, "lp", "-d", job.Printer, "-o", "raw", path); err != nil {
		return errors.Wrapf(err, "print to %s", job.Printer)
	}
	log := logging.GetLogger("printer")
	log.Info().Str("printer", job.Printer).Int("bytes", len(job.Data)).Msg("job submitted to lp")
	return nil
}

// DeviceSpooler writes jobs straight to a character device such as
// /dev/usb/lp0, or to a raw network port given as tcp://host:9100.
type DeviceSpooler struct {
	// DialTimeout defaults to five seconds.
	DialTimeout time.Duration
}

func (s *DeviceSpooler) Print(ctx context.Context, job Job) error {
	target := strings.TrimSpace(job.Printer)
	if target == "" {
		return ErrNoPrinter
	}
	log := logging.GetLogger("printer")

	if addr, ok := strings.CutPrefix(target, "tcp://"); ok {
		timeout := s.DialTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return errors.Wrapf(err, "connect to %s", addr)
		}
		defer conn.Close()
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetWriteDeadline(deadline); err != nil {
				return errors.Wrapf(err, "set write deadline for %s", addr)
			}
		}
		if _, err := conn.Write(job.Data); err != nil {
			return errors.Wrapf(err, "send job to %s", addr)
		}
		log.Info().Str("addr", addr).Int("bytes", len(job.Data)).Msg("job sent")
		return nil
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errors.WithHint(errors.Wrapf(err, "open device %s", target),
			"check the device path and that your user may write to it")
	}
	if _, err := f.Write(job.Data); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write to %s", target)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", target)
	}
	log.Info().Str("device", target).Int("bytes", len(job.Data)).Msg("job written")
	return nil
}
