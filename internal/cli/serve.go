package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP preview server",
		Long: `Serve exposes note previews and print jobs over HTTP:

  GET  /v1/notes                   list notes (search, sort, order, limit)
  GET  /v1/notes/{id}/preview      HTML receipt preview (width)
  GET  /v1/notes/{id}/escpos       ESC/POS print job (width)
  POST /v1/notes/{id}/print        print on the saved or given printer
  POST /v1/render                  render the request body (target, width, title)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, map[string]string{"addr": "server.addr", "token": "server.token"})
			addr := app.Cfg.GetString("server.addr")

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", addr)
			}
			srv := server.New(app)
			httpSrv := &http.Server{Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- httpSrv.Serve(ln) }()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview server listening on http://%s\n", ln.Addr())
			app.Log.Info().Str("addr", ln.Addr().String()).Msg("server started")

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			app.Log.Info().Msg("shutting down")
			return httpSrv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().String("token", "", "bearer token for the API (overrides server.token)")
	return cmd
}
