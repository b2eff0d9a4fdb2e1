// Package socket serves the app over a Slack socket mode connection, an
// alternative to the public HTTP endpoints.
package socket

import (
	"context"
	"log/slog"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/jannatkhandev/App-Todoist/internal/dispatch"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
)

type Dispatcher interface {
	Command(ctx context.Context, cmd slack.SlashCommand) error
	Interaction(ctx context.Context, cb slack.InteractionCallback) interaction.Response
	Event(ctx context.Context, event slackevents.EventsAPIEvent) error
}

// Client is the part of *socketmode.Client the runner uses.
type Client interface {
	RunContext(ctx context.Context) error
	Ack(req socketmode.Request, payload ...interface{})
}

type Runner struct {
	client     Client
	events     <-chan socketmode.Event
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewRunner(client *socketmode.Client, dispatcher Dispatcher, logger *slog.Logger) *Runner {
	return newRunner(client, client.Events, dispatcher, logger)
}

func newRunner(client Client, events <-chan socketmode.Event, dispatcher Dispatcher, logger *slog.Logger) *Runner {
	return &Runner{client: client, events: events, dispatcher: dispatcher, logger: logger}
}

// Run blocks until ctx is canceled or the connection fails for good.
func (r *Runner) Run(ctx context.Context) error {
	go r.loop(ctx)
	return r.client.RunContext(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-r.events:
			if !ok {
				return
			}
			r.Handle(ctx, evt)
		}
	}
}

// Handle processes one socket mode event. Commands and events are
// acknowledged before they run; interactions are acknowledged with their
// outcome so modal field errors reach the user.
func (r *Runner) Handle(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		r.logger.Info("connecting to socket mode")
	case socketmode.EventTypeConnected:
		r.logger.Info("connected to socket mode")
	case socketmode.EventTypeConnectionError:
		r.logger.Warn("socket mode connection error", "data", evt.Data)

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		r.client.Ack(*evt.Request)
		if err := r.dispatcher.Command(ctx, cmd); err != nil {
			r.logger.ErrorContext(ctx, "failed to reply to slash command", "user_id", cmd.UserID, "text", cmd.Text, "error", err)
		}

	case socketmode.EventTypeInteractive:
		cb, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}
		resp := r.dispatcher.Interaction(ctx, cb)
		if !resp.OK {
			r.logger.WarnContext(ctx, "interaction failed", "type", cb.Type, "user_id", cb.User.ID, "error", resp.Err)
		}
		if ack := dispatch.ViewAck(resp); ack != nil {
			r.client.Ack(*evt.Request, ack)
			return
		}
		r.client.Ack(*evt.Request)

	case socketmode.EventTypeEventsAPI:
		event, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok || evt.Request == nil {
			return
		}
		r.client.Ack(*evt.Request)
		if err := r.dispatcher.Event(ctx, event); err != nil {
			r.logger.ErrorContext(ctx, "failed to handle event", "type", event.InnerEvent.Type, "error", err)
		}

	default:
		r.logger.Debug("ignoring socket mode event", "type", evt.Type)
	}
}
