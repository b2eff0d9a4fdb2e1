// Package dispatch converts Slack payloads into slash command requests and
// typed interaction payloads, and maps outcomes back to acknowledgments.
// The HTTP endpoints and the socket mode runner share it.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/jannatkhandev/App-Todoist/internal/command"
	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
	"github.com/jannatkhandev/App-Todoist/internal/model"
)

var ErrNoAction = errors.New("block action payload carries no action")

type CommandRouter interface {
	Execute(ctx context.Context, req command.Request) error
}

type InteractionHandler interface {
	BlockAction(ctx context.Context, p interaction.BlockActionPayload) interaction.Response
	ViewSubmit(ctx context.Context, p interaction.ViewSubmitPayload) interaction.Response
	ActionButton(ctx context.Context, p interaction.ActionButtonPayload) interaction.Response
}

type Welcomer interface {
	Welcome(ctx context.Context, user model.User) error
}

type Dispatcher struct {
	commands     CommandRouter
	interactions InteractionHandler
	directory    host.Directory
	welcomer     Welcomer
	logger       *slog.Logger
}

func New(commands CommandRouter, interactions InteractionHandler, directory host.Directory, welcomer Welcomer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		commands:     commands,
		interactions: interactions,
		directory:    directory,
		welcomer:     welcomer,
		logger:       logger,
	}
}

// Command runs one /todoist invocation.
func (d *Dispatcher) Command(ctx context.Context, cmd slack.SlashCommand) error {
	req := command.Request{
		User:      d.user(ctx, cmd.UserID, cmd.UserName),
		Room:      model.Room{ID: cmd.ChannelID, Name: cmd.ChannelName},
		TriggerID: cmd.TriggerID,
		Args:      strings.Fields(cmd.Text),
	}
	return d.commands.Execute(ctx, req)
}

// Interaction routes a callback by its type. Types the app does not use
// are acknowledged without action.
func (d *Dispatcher) Interaction(ctx context.Context, cb slack.InteractionCallback) interaction.Response {
	user := model.User{ID: cb.User.ID, Name: cb.User.Name}

	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		if len(cb.ActionCallback.BlockActions) == 0 {
			d.logger.WarnContext(ctx, "block action payload without actions", "user_id", user.ID)
			return interaction.Response{Err: ErrNoAction}
		}
		action := cb.ActionCallback.BlockActions[0]
		value := action.Value
		if value == "" {
			value = action.SelectedOption.Value
		}
		return d.interactions.BlockAction(ctx, interaction.BlockActionPayload{
			User:      user,
			Room:      room(cb),
			ActionID:  action.ActionID,
			BlockID:   action.BlockID,
			Value:     value,
			TriggerID: cb.TriggerID,
		})
	case slack.InteractionTypeViewSubmission:
		return d.interactions.ViewSubmit(ctx, interaction.ViewSubmitPayload{
			User:     user,
			Room:     room(cb),
			ViewID:   cb.View.CallbackID,
			Metadata: cb.View.PrivateMetadata,
			Values:   Values(cb.View.State),
		})
	case slack.InteractionTypeMessageAction:
		return d.interactions.ActionButton(ctx, interaction.ActionButtonPayload{
			User:        user,
			Room:        room(cb),
			ActionID:    cb.CallbackID,
			TriggerID:   cb.TriggerID,
			MessageText: cb.Message.Text,
		})
	default:
		d.logger.DebugContext(ctx, "ignoring interaction", "type", cb.Type)
		return interaction.Response{OK: true}
	}
}

// Event handles Events API callbacks. Only app_home_opened is used: it
// greets users the first time they open the app.
func (d *Dispatcher) Event(ctx context.Context, event slackevents.EventsAPIEvent) error {
	if event.Type != slackevents.CallbackEvent {
		return nil
	}
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppHomeOpenedEvent:
		return d.welcomer.Welcome(ctx, d.user(ctx, ev.User, ""))
	default:
		d.logger.DebugContext(ctx, "ignoring event", "type", event.InnerEvent.Type)
		return nil
	}
}

// user resolves workspace roles; a lookup failure degrades to a plain user.
func (d *Dispatcher) user(ctx context.Context, id, name string) model.User {
	u, err := d.directory.User(ctx, id)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to look up user", "user_id", id, "error", err)
		return model.User{ID: id, Name: name}
	}
	return u
}

func room(cb slack.InteractionCallback) *model.Room {
	if cb.Channel.ID == "" {
		return nil
	}
	return &model.Room{ID: cb.Channel.ID, Name: cb.Channel.Name}
}

// Values flattens submitted view state to input block id -> value. Each
// input block holds a single element.
func Values(state *slack.ViewState) map[string]string {
	values := make(map[string]string)
	if state == nil {
		return values
	}
	for blockID, actions := range state.Values {
		for _, a := range actions {
			switch {
			case a.Value != "":
				values[blockID] = a.Value
			case a.SelectedDate != "":
				values[blockID] = a.SelectedDate
			case a.SelectedOption.Value != "":
				values[blockID] = a.SelectedOption.Value
			}
		}
	}
	return values
}

// ViewAck is the view submission acknowledgment body, or nil when the
// modal should simply close.
func ViewAck(resp interaction.Response) *slack.ViewSubmissionResponse {
	if len(resp.Errors) == 0 {
		return nil
	}
	return slack.NewErrorsViewSubmissionResponse(resp.Errors)
}
