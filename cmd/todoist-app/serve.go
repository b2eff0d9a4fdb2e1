package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jannatkhandev/App-Todoist/internal/config"
	todohttp "github.com/jannatkhandev/App-Todoist/internal/http"
	"github.com/jannatkhandev/App-Todoist/internal/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Slack request URLs and the OAuth callback over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, logger, err := loadConfig(config.Config.Validate)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := todohttp.NewServer(cfg.ServerPort, logger, todohttp.Routes{
		DB:         a.db,
		Dispatcher: a.dispatcher,
		OAuth:      a.oauth,
		Messenger:  a.host,
		Logger:     logger,
	}, middleware.VerifyConfig{
		SigningSecret: cfg.Slack.SigningSecret,
		Disabled:      cfg.Slack.VerifyDisabled,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
