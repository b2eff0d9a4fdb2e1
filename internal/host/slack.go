package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

// SlackAPI is the subset of *slack.Client the adapter uses.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

var _ SlackAPI = (*slack.Client)(nil)

type Slack struct {
	api    SlackAPI
	logger *slog.Logger
}

func NewSlack(api SlackAPI, logger *slog.Logger) *Slack {
	return &Slack{api: api, logger: logger}
}

func options(msg Message) []slack.MsgOption {
	opts := []slack.MsgOption{slack.MsgOptionText(msg.Text, false)}
	if len(msg.Blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(msg.Blocks...))
	}
	return opts
}

func (s *Slack) Notify(ctx context.Context, room model.Room, user model.User, msg Message) error {
	if _, err := s.api.PostEphemeralContext(ctx, room.ID, user.ID, options(msg)...); err != nil {
		return fmt.Errorf("failed to notify user %s in %s: %w", user.ID, room.ID, err)
	}
	return nil
}

func (s *Slack) Send(ctx context.Context, room model.Room, msg Message) error {
	if _, _, err := s.api.PostMessageContext(ctx, room.ID, options(msg)...); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", room.ID, err)
	}
	return nil
}

func (s *Slack) DirectMessage(ctx context.Context, user model.User, msg Message) error {
	channel, _, _, err := s.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{user.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to open direct message with %s: %w", user.ID, err)
	}
	return s.Send(ctx, model.Room{ID: channel.ID}, msg)
}

func (s *Slack) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := s.api.OpenViewContext(ctx, triggerID, view); err != nil {
		s.logger.WarnContext(ctx, "open view failed", "callback_id", view.CallbackID, "error", err)
		return fmt.Errorf("failed to open view: %w", err)
	}
	return nil
}

func (s *Slack) Room(ctx context.Context, id string) (model.Room, error) {
	if id == "" {
		return model.Room{}, ErrRoomNotFound
	}
	channel, err := s.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: id})
	if err != nil {
		return model.Room{}, fmt.Errorf("%w: %s: %v", ErrRoomNotFound, id, err)
	}
	return model.Room{ID: channel.ID, Name: channel.Name}, nil
}

func (s *Slack) User(ctx context.Context, id string) (model.User, error) {
	u, err := s.api.GetUserInfoContext(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return model.User{ID: u.ID, Name: u.Name, IsAdmin: u.IsAdmin, IsOwner: u.IsOwner}, nil
}

var (
	_ Messenger = (*Slack)(nil)
	_ Directory = (*Slack)(nil)
)
