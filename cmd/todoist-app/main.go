package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/spf13/cobra"

	"github.com/jannatkhandev/App-Todoist/internal/config"
)

var Version = "dev"

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todoist-app",
		Short:         "Todoist for Slack: slash command, interactive lists and task modals",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(socketCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}

// loadConfig reads the environment, validates it and installs the
// configured logger as the default.
func loadConfig(validate func(config.Config) error) (config.Config, *slog.Logger, error) {
	cfg := config.Load()
	if err := validate(cfg); err != nil {
		return config.Config{}, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"db_driver", cfg.DB.Driver,
		"slack_verify_disabled", cfg.Slack.VerifyDisabled,
		"log_level", cfg.LogLevel,
	)
	return cfg, logger, nil
}
