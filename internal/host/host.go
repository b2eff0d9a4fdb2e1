// Package host delivers messages and modals to the chat workspace and
// resolves rooms and users.
package host

import (
	"context"
	"errors"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

var ErrRoomNotFound = errors.New("room not found")

// Message is one chat message. Text is the notification fallback when
// Blocks are present.
type Message struct {
	Text   string
	Blocks []slack.Block
}

type Messenger interface {
	// Notify shows a message only the user can see.
	Notify(ctx context.Context, room model.Room, user model.User, msg Message) error
	// Send posts a message visible to the whole room.
	Send(ctx context.Context, room model.Room, msg Message) error
	DirectMessage(ctx context.Context, user model.User, msg Message) error
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
}

type Directory interface {
	Room(ctx context.Context, id string) (model.Room, error)
	User(ctx context.Context, id string) (model.User, error)
}
