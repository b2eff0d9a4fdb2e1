package interaction

import (
	"context"
	"fmt"

	"github.com/jannatkhandev/App-Todoist/internal/modal"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

// ActionButton handles a message shortcut.
func (h *Handler) ActionButton(ctx context.Context, p ActionButtonPayload) Response {
	action, ok := ui.ParseMessageAction(p.ActionID)
	if !ok {
		h.Logger.WarnContext(ctx, "invalid message action received", "action_id", p.ActionID)
		return failure(fmt.Errorf("%w: %s", ErrUnknownAction, p.ActionID), nil)
	}
	if p.Room == nil {
		h.Logger.WarnContext(ctx, "room data not present in interaction", "action_id", action)
		return failure(ErrMissingRoom, nil)
	}

	var err error
	switch action {
	case ui.ActionCreateTaskFromMessage:
		err = h.openView(ctx, p.TriggerID, modal.CreateTask(p.Room.ID, "", p.MessageText))
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	if err != nil {
		h.Logger.ErrorContext(ctx, "message action failed", "action_id", action, "user_id", p.User.ID, "error", err)
		h.notify(ctx, *p.Room, p.User, errorText(err))
		return failure(err, nil)
	}
	return success()
}
