package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/petal-labs/mandala/web"
)

const shutdownTimeout = 10 * time.Second

func (a *App) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mandala web form",
		Long: `Serve the mandala form over HTTP until interrupted.

Examples:
  mandala serve
  mandala serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&a.serveAddr, "addr", "", "listen address (default from config, :8501)")
	return cmd
}

func (a *App) runServe(ctx context.Context) error {
	gen, err := a.generator()
	if err != nil {
		return err
	}

	server, err := web.NewServer(gen, a.logger)
	if err != nil {
		return fmt.Errorf("template init failed: %w", err)
	}

	addr := a.settings().ListenAddr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return exitWithCode(ExitNetwork, fmt.Errorf("listen on %s: %w", addr, err))
	}

	srv := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(a.stderr, "Mandala generator listening on http://%s\n", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return exitWithCode(ExitNetwork, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}
