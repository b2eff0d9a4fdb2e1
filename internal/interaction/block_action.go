package interaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/modal"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/render"
	"github.com/jannatkhandev/App-Todoist/internal/service"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

// BlockAction handles a click on a message button.
func (h *Handler) BlockAction(ctx context.Context, p BlockActionPayload) Response {
	action, ok := ui.ParseBlockAction(p.ActionID)
	if !ok {
		h.Logger.WarnContext(ctx, "invalid action id received", "action_id", p.ActionID)
		return failure(fmt.Errorf("%w: %s", ErrUnknownAction, p.ActionID), nil)
	}

	switch action {
	case ui.ActionAuthorize, ui.ActionViewProject, ui.ActionViewTask:
		// Link buttons; the browser handles them.
		return success()
	}

	if p.Room == nil {
		h.Logger.ErrorContext(ctx, "room data not present in interaction", "action_id", action)
		return failure(ErrMissingRoom, nil)
	}
	if p.Value == "" {
		h.Logger.ErrorContext(ctx, "value missing in interaction", "action_id", action)
		return failure(ErrMissingValue, nil)
	}

	if err := h.blockAction(ctx, action, p, *p.Room); err != nil {
		h.Logger.ErrorContext(ctx, "block action failed", "action_id", action, "user_id", p.User.ID, "error", err)
		h.notify(ctx, *p.Room, p.User, errorText(err))
		return failure(err, nil)
	}
	return success()
}

func (h *Handler) blockAction(ctx context.Context, action ui.ActionID, p BlockActionPayload, room model.Room) error {
	user, value := p.User, p.Value

	switch action {
	case ui.ActionCreateTaskInProject:
		return h.openView(ctx, p.TriggerID, modal.CreateTask(room.ID, value, ""))
	case ui.ActionShareProject:
		return share(ctx, h, room, func() ([]model.Project, error) { return h.Projects.Fetch(ctx, user, value) }, render.ShareProject)
	case ui.ActionShareTask:
		return share(ctx, h, room, func() ([]model.Task, error) { return h.Tasks.Fetch(ctx, user, value) }, render.ShareTask)
	case ui.ActionShareSection:
		return share(ctx, h, room, func() ([]model.Section, error) { return h.Sections.Fetch(ctx, user, value) }, render.ShareSection)
	case ui.ActionShareLabel:
		return share(ctx, h, room, func() ([]model.Label, error) { return h.Labels.Fetch(ctx, user, value) }, render.ShareLabel)
	case ui.ActionShareComment:
		return share(ctx, h, room, func() ([]model.Comment, error) {
			return h.Comments.Fetch(ctx, user, service.CommentFilter{CommentID: value})
		}, render.ShareComment)
	case ui.ActionGetComments:
		return h.comments(ctx, p, room)
	case ui.ActionCompleteTask:
		if err := h.Tasks.Close(ctx, user, value); err != nil {
			return err
		}
		h.notify(ctx, room, user, "✅ Task completed successfully!")
		return nil
	case ui.ActionDeleteTask, ui.ActionDeleteSection, ui.ActionDeleteLabel, ui.ActionDeleteComment, ui.ActionRemoveSharedLabel:
		return h.confirmDelete(ctx, action, p, room)
	case ui.ActionRenameSharedLabel:
		return h.openView(ctx, p.TriggerID, modal.RenameSharedLabel(value, room.ID))
	case ui.ActionConvertSharedLabel:
		label, err := h.Labels.Create(ctx, user, value)
		if err != nil {
			return err
		}
		h.notify(ctx, room, user, fmt.Sprintf("✅ Label *%s* is now one of your personal labels!", ui.Escape(label.Name)))
		return nil
	case ui.ActionAuthorize, ui.ActionViewProject, ui.ActionViewTask:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

func (h *Handler) openView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if triggerID == "" {
		return ErrMissingTrigger
	}
	return h.Messenger.OpenView(ctx, triggerID, view)
}

func share[T any](ctx context.Context, h *Handler, room model.Room, fetch func() ([]T, error), line func(T) string) error {
	items, err := fetch()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return &service.UserError{Message: "The item no longer exists.", Err: service.ErrNotFound}
	}
	return h.Messenger.Send(ctx, room, host.Message{Text: line(items[0])})
}

// comments lists the comments of a project or task. Buttons in project
// rows carry "project" in their block id.
func (h *Handler) comments(ctx context.Context, p BlockActionPayload, room model.Room) error {
	isProject := strings.Contains(p.BlockID, "project")

	filter, kind := service.CommentFilter{TaskID: p.Value}, "task"
	if isProject {
		filter, kind = service.CommentFilter{ProjectID: p.Value}, "project"
	}

	comments, err := h.Comments.Fetch(ctx, p.User, filter)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		h.notify(ctx, room, p.User, fmt.Sprintf("No comments found on %s %s. Create one using the Todoist app or website.", kind, p.Value))
		return nil
	}
	return h.Messenger.Notify(ctx, room, p.User, host.Message{
		Text:   fmt.Sprintf("Comments on %s %s", kind, p.Value),
		Blocks: render.Comments(comments),
	})
}

// lookupTimeout bounds the name lookup before a confirmation modal opens;
// the trigger id expires three seconds after the click.
const lookupTimeout = 2500 * time.Millisecond

func (h *Handler) confirmDelete(ctx context.Context, action ui.ActionID, p BlockActionPayload, room model.Room) error {
	itemType, name := h.describe(ctx, action, p.User, p.Value)
	view, err := modal.DeleteConfirmation(itemType, name, p.Value, action, room.ID)
	if err != nil {
		return err
	}
	return h.openView(ctx, p.TriggerID, view)
}

// describe returns the item type and a display name for the confirmation
// text. The id stands in for the name when the lookup fails.
func (h *Handler) describe(ctx context.Context, action ui.ActionID, user model.User, id string) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	switch action {
	case ui.ActionDeleteTask:
		tasks, err := h.Tasks.Fetch(ctx, user, id)
		return "task", nameOr(tasks, err, func(t model.Task) string { return t.Content }, id)
	case ui.ActionDeleteSection:
		sections, err := h.Sections.Fetch(ctx, user, id)
		return "section", nameOr(sections, err, func(s model.Section) string { return s.Name }, id)
	case ui.ActionDeleteLabel:
		labels, err := h.Labels.Fetch(ctx, user, id)
		return "label", nameOr(labels, err, func(l model.Label) string { return l.Name }, id)
	case ui.ActionDeleteComment:
		comments, err := h.Comments.Fetch(ctx, user, service.CommentFilter{CommentID: id})
		return "comment", nameOr(comments, err, func(c model.Comment) string { return c.Content }, id)
	default:
		return "shared label", id
	}
}

func nameOr[T any](items []T, err error, name func(T) string, fallback string) string {
	if err != nil || len(items) == 0 {
		return fallback
	}
	if n := name(items[0]); n != "" {
		return n
	}
	return fallback
}
