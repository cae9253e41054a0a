package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hongminglow/user-directory/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the users API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, zl, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	defer zl.Sync()

	userStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		zl.Error("init database", zap.Error(err))
		return err
	}
	defer userStore.Close()

	srv := server.New(cfg, userStore, zl)

	errCh := make(chan error, 1)
	go func() {
		zl.Info("user directory listening",
			zap.String("addr", cfg.HTTPAddress()),
			zap.String("driver", cfg.DatabaseDriver))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		zl.Error("http server error", zap.Error(err))
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zl.Warn("graceful shutdown error", zap.Error(err))
	}
	zl.Info("server stopped")
	return nil
}
