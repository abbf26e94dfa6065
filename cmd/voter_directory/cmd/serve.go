package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khalidmahamud/voter-info-web/api"
	"github.com/khalidmahamud/voter-info-web/config"
	"github.com/khalidmahamud/voter-info-web/internal/directory"
)

type serveOptions struct {
	port  int
	watch bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API over the voter dataset.

With --watch the dataset file is re-read whenever it changes. A failed
reload keeps the previous data in service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (overrides http.port)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload when the dataset file changes (overrides data.watch)")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, opts serveOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if opts.port != 0 {
		cfg.HTTP.Port = opts.port
	}
	if opts.watch {
		cfg.Data.Watch = true
	}

	log, err := root.newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, err := openDirectory(ctx, cfg, log)
	if err != nil {
		log.Error("failed to load dataset", zap.String("path", cfg.Data.Path), zap.Error(err))
		return err
	}

	if cfg.Data.Watch {
		go func() {
			if err := dir.Watch(ctx, directory.DefaultDebounce); err != nil {
				log.Error("dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := newServer(cfg, dir, log)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newServer builds the HTTP server for the directory.
func newServer(cfg config.AppConfig, dir *directory.Directory, log *zap.Logger) *http.Server {
	if cfg.Logging.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(dir, api.RouterConfig{MaxBodyBytes: cfg.HTTP.MaxBodyBytes}, log)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}
}
