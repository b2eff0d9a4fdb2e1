package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/command"
	"github.com/jannatkhandev/App-Todoist/internal/config"
	"github.com/jannatkhandev/App-Todoist/internal/dispatch"
	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
	"github.com/jannatkhandev/App-Todoist/internal/notify"
	"github.com/jannatkhandev/App-Todoist/internal/oauth"
	"github.com/jannatkhandev/App-Todoist/internal/repository"
	"github.com/jannatkhandev/App-Todoist/internal/service"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

// app holds the wired components shared by serve and socket.
type app struct {
	db         *sql.DB
	slack      *slack.Client
	host       *host.Slack
	oauth      *oauth.Service
	dispatcher *dispatch.Dispatcher
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	db, err := repository.NewDB(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database connected", "driver", cfg.DB.Driver)

	// Repositories
	tokens := repository.NewSQLToken(db)
	prefs := repository.NewSQLNotification(db)

	// Slack
	opts := []slack.Option{slack.OptionDebug(cfg.Slack.Debug)}
	if cfg.Slack.AppToken != "" {
		opts = append(opts, slack.OptionAppLevelToken(cfg.Slack.AppToken))
	}
	api := slack.New(cfg.Slack.BotToken, opts...)
	slackHost := host.NewSlack(api, logger)

	// Todoist
	auth := oauth.NewService(cfg.Todoist, tokens, logger)
	client := todoist.NewClient(auth, logger, todoist.WithBaseURL(cfg.Todoist.APIURL))

	projects := service.NewProjectService(client, logger)
	tasks := service.NewTaskService(client, logger)
	sections := service.NewSectionService(client, logger)
	labels := service.NewLabelService(client, logger)
	sharedLabels := service.NewSharedLabelService(client, logger)
	comments := service.NewCommentService(client, logger)

	notifier := notify.NewNotifier(slackHost, prefs, logger)

	router := command.NewRouter(command.Deps{
		Messenger:    slackHost,
		Notifier:     notifier,
		Auth:         auth,
		Projects:     projects,
		Tasks:        tasks,
		Sections:     sections,
		Labels:       labels,
		SharedLabels: sharedLabels,
		Logger:       logger,
	})
	handler := interaction.NewHandler(interaction.Deps{
		Messenger:    slackHost,
		Directory:    slackHost,
		Projects:     projects,
		Tasks:        tasks,
		Sections:     sections,
		Labels:       labels,
		SharedLabels: sharedLabels,
		Comments:     comments,
		Logger:       logger,
	})

	return &app{
		db:         db,
		slack:      api,
		host:       slackHost,
		oauth:      auth,
		dispatcher: dispatch.New(router, handler, slackHost, notifier, logger),
	}, nil
}

func (a *app) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
