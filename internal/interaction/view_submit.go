package interaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jannatkhandev/App-Todoist/internal/modal"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/service"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

const dueDateLayout = "2006-01-02"

// ViewSubmit handles a modal submission. Once the room is known, exactly
// one confirmation or error notification is sent.
func (h *Handler) ViewSubmit(ctx context.Context, p ViewSubmitPayload) Response {
	kind, roomID, ok := ui.ParseViewID(p.ViewID)
	if !ok {
		h.Logger.WarnContext(ctx, "invalid view id received", "view_id", p.ViewID)
		return failure(fmt.Errorf("%w: %s", ErrUnknownView, p.ViewID), nil)
	}

	submit, err := modal.ParseSubmit(p.Metadata)
	if err != nil {
		h.Logger.ErrorContext(ctx, "invalid view metadata", "view_id", p.ViewID, "error", err)
		return failure(err, nil)
	}
	if kind != ui.ViewCreateTask && submit.Value == "" {
		h.Logger.ErrorContext(ctx, "view submit has no associated value", "view_id", p.ViewID)
		return failure(ErrMissingValue, nil)
	}

	room := p.Room
	if room == nil {
		h.Logger.WarnContext(ctx, "room data not present in interaction", "view_id", p.ViewID)
		resolved, err := h.Directory.Room(ctx, roomID)
		if err != nil {
			h.Logger.ErrorContext(ctx, "room does not exist", "room_id", roomID, "error", err)
			return failure(fmt.Errorf("%w: %v", ErrMissingRoom, err), nil)
		}
		room = &resolved
	}

	text, err := h.viewSubmit(ctx, kind, submit, p)
	if err != nil {
		h.Logger.ErrorContext(ctx, "view submit failed", "view_id", p.ViewID, "user_id", p.User.ID, "error", err)
		h.notify(ctx, *room, p.User, errorText(err))
		return failure(err, fieldErrors(kind, err))
	}
	h.notify(ctx, *room, p.User, text)
	return success()
}

func (h *Handler) viewSubmit(ctx context.Context, kind ui.ViewKind, submit modal.Submit, p ViewSubmitPayload) (string, error) {
	if want, ok := deleteAction(kind); ok && submit.ActionID != want {
		return "", fmt.Errorf("%w: view %s submitted for action %q", ErrUnknownAction, kind, submit.ActionID)
	}

	user, id := p.User, submit.Value

	switch kind {
	case ui.ViewCreateTask:
		return h.createTask(ctx, user, p.Values)
	case ui.ViewDeleteTask:
		return "✅ Task deleted successfully!", h.Tasks.Delete(ctx, user, id)
	case ui.ViewDeleteSection:
		return "✅ Section deleted successfully!", h.Sections.Delete(ctx, user, id)
	case ui.ViewDeleteLabel:
		return "✅ Label deleted successfully!", h.Labels.Delete(ctx, user, id)
	case ui.ViewDeleteComment:
		return "✅ Comment deleted successfully!", h.Comments.Delete(ctx, user, id)
	case ui.ViewDeleteSharedLabel:
		return "✅ Shared label removed successfully!", h.SharedLabels.Delete(ctx, user, id)
	case ui.ViewRenameSharedLabel:
		newName := strings.TrimSpace(p.Values[ui.InputSharedLabel])
		if newName == "" {
			return "", invalidInput("A new name is required.")
		}
		if err := h.SharedLabels.Rename(ctx, user, id, newName); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Shared label renamed to *%s*!", ui.Escape(newName)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownView, kind)
	}
}

// deleteAction returns the action a delete confirmation must carry.
func deleteAction(kind ui.ViewKind) (ui.ActionID, bool) {
	for _, a := range ui.BlockActions() {
		if k, ok := ui.DeleteView(a); ok && k == kind {
			return a, true
		}
	}
	return "", false
}

func invalidInput(msg string) error {
	return &service.UserError{Message: msg, Err: service.ErrInvalidInput}
}

func (h *Handler) createTask(ctx context.Context, user model.User, values map[string]string) (string, error) {
	name := strings.TrimSpace(values[ui.InputTaskName])
	if name == "" {
		return "", invalidInput("A task name is required.")
	}

	rawPriority := values[ui.InputPriority]
	if rawPriority == "" {
		rawPriority = strconv.Itoa(int(model.PriorityNormal))
	}
	n, err := strconv.Atoi(rawPriority)
	if err != nil || !model.Priority(n).IsValid() {
		return "", invalidInput(fmt.Sprintf("Invalid priority %q.", rawPriority))
	}

	due := values[ui.InputDueDate]
	if due == "" {
		due = h.Now().Add(24 * time.Hour).UTC().Format(dueDateLayout)
	}

	task, err := h.Tasks.Create(ctx, user, model.CreateTaskInput{
		Content:     name,
		Description: values[ui.InputDescription],
		ProjectID:   strings.TrimSpace(values[ui.InputProjectID]),
		DueDate:     due,
		Priority:    model.Priority(n),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅️ Task created successfully! \n You may access it at %s", ui.Link(task.URL, name)), nil
}

// fieldErrors places input problems next to the field that caused them.
func fieldErrors(kind ui.ViewKind, err error) map[string]string {
	if !errors.Is(err, service.ErrInvalidInput) {
		return nil
	}
	msg := service.Message(err)
	switch kind {
	case ui.ViewCreateTask:
		if strings.Contains(msg, "priority") {
			return map[string]string{ui.InputPriority: msg}
		}
		return map[string]string{ui.InputTaskName: msg}
	case ui.ViewRenameSharedLabel:
		return map[string]string{ui.InputSharedLabel: msg}
	default:
		return nil
	}
}
