package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/slack-go/slack/socketmode"
	"github.com/spf13/cobra"

	"github.com/jannatkhandev/App-Todoist/internal/config"
	"github.com/jannatkhandev/App-Todoist/internal/socket"
)

func socketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "socket",
		Short: "Connect to Slack over socket mode instead of public HTTP endpoints",
		Long: `Connect to Slack over socket mode.

Slash commands, interactions and events arrive over a websocket opened
with SLACK_APP_TOKEN, so no public request URL is needed. The OAuth
callback still requires "serve" to be reachable from the browser.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSocket(cmd.Context())
		},
	}
}

func runSocket(ctx context.Context) error {
	cfg, logger, err := loadConfig(config.Config.ValidateSocket)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	client := socketmode.New(a.slack, socketmode.OptionDebug(cfg.Slack.Debug))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("socket mode starting")
	if err := socket.NewRunner(client, a.dispatcher, logger).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("socket mode stopped")
	return nil
}
