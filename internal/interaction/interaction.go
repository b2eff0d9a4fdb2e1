// Package interaction routes button clicks, modal submissions and message
// shortcuts to Todoist operations.
package interaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/service"
)

var (
	ErrMissingRoom    = errors.New("room info not found in interaction")
	ErrMissingValue   = errors.New("interaction carries no value")
	ErrMissingTrigger = errors.New("interaction carries no trigger id")
	ErrUnknownAction  = errors.New("unknown action id")
	ErrUnknownView    = errors.New("unknown view id")
)

// BlockActionPayload is a click on an interactive element of a message.
type BlockActionPayload struct {
	User      model.User
	Room      *model.Room
	ActionID  string
	BlockID   string
	Value     string
	TriggerID string
}

// ViewSubmitPayload is a modal submission. Values maps input block ids to
// the submitted values; Metadata is the modal's private metadata.
type ViewSubmitPayload struct {
	User     model.User
	Room     *model.Room
	ViewID   string
	Metadata string
	Values   map[string]string
}

// ActionButtonPayload is a message shortcut invocation.
type ActionButtonPayload struct {
	User        model.User
	Room        *model.Room
	ActionID    string
	TriggerID   string
	MessageText string
}

// Response is the acknowledgment returned to the chat platform. Errors
// maps input block ids to messages shown inline in a modal.
type Response struct {
	OK     bool
	Err    error
	Errors map[string]string
}

func success() Response {
	return Response{OK: true}
}

func failure(err error, fields map[string]string) Response {
	return Response{Err: err, Errors: fields}
}

type ProjectService interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Project, error)
}

type TaskService interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Task, error)
	Create(ctx context.Context, user model.User, input model.CreateTaskInput) (model.Task, error)
	Close(ctx context.Context, user model.User, id string) error
	Delete(ctx context.Context, user model.User, id string) error
}

type SectionService interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Section, error)
	Delete(ctx context.Context, user model.User, id string) error
}

type LabelService interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Label, error)
	Create(ctx context.Context, user model.User, name string) (model.Label, error)
	Delete(ctx context.Context, user model.User, id string) error
}

type SharedLabelService interface {
	Rename(ctx context.Context, user model.User, name, newName string) error
	Delete(ctx context.Context, user model.User, name string) error
}

type CommentService interface {
	Fetch(ctx context.Context, user model.User, filter service.CommentFilter) ([]model.Comment, error)
	Delete(ctx context.Context, user model.User, id string) error
}

type Deps struct {
	Messenger    host.Messenger
	Directory    host.Directory
	Projects     ProjectService
	Tasks        TaskService
	Sections     SectionService
	Labels       LabelService
	SharedLabels SharedLabelService
	Comments     CommentService
	Logger       *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Handler{Deps: deps}
}

func (h *Handler) notify(ctx context.Context, room model.Room, user model.User, text string) {
	if err := h.Messenger.Notify(ctx, room, user, host.Message{Text: text}); err != nil {
		h.Logger.ErrorContext(ctx, "notification failed", "user_id", user.ID, "room_id", room.ID, "error", err)
	}
}

func errorText(err error) string {
	return "❗️ Unable to process your request! \nError: " + service.Message(err)
}
