package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/export"
	"github.com/demonstra-dev/demonstra/internal/report"
	"github.com/demonstra-dev/demonstra/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(g *globalFlags) *cobra.Command {
	var addr, runLogDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}
			if !g.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(report.NewService(e.cfg, e.log), export.DefaultRegistry(), e.log.Named("http"), server.Options{
				MaxUploadBytes: e.cfg.Server.MaxUploadMB << 20,
				DefaultFormat:  e.cfg.Export.DefaultFormat,
				RunLogRoot:     runLogDir,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, &http.Server{Addr: addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}, e.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&runLogDir, "runlog", "", "project directory whose logs/runs.csv records each request")

	return cmd
}

// listen serves until ctx is done, then shuts down gracefully.
func listen(ctx context.Context, hs *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", hs.Addr))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
