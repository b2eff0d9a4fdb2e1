package ui

import "strings"

// ActionID identifies an interactive element whose events reach the
// block-action router.
type ActionID string

const (
	ActionAuthorize           ActionID = "authorize"
	ActionCreateTaskInProject ActionID = "create_task_in_project"
	ActionViewProject         ActionID = "view_project"
	ActionShareProject        ActionID = "share_project"
	ActionViewTask            ActionID = "view_task"
	ActionShareTask           ActionID = "share_task"
	ActionCompleteTask        ActionID = "complete_task"
	ActionShareSection        ActionID = "share_section"
	ActionShareLabel          ActionID = "share_label"
	ActionShareComment        ActionID = "share_comment"
	ActionGetComments         ActionID = "get_comments"
	ActionDeleteTask          ActionID = "delete_task"
	ActionDeleteSection       ActionID = "delete_section"
	ActionDeleteLabel         ActionID = "delete_label"
	ActionDeleteComment       ActionID = "delete_comment"
	ActionRenameSharedLabel   ActionID = "rename_shared_label"
	ActionRemoveSharedLabel   ActionID = "remove_shared_label"
	ActionConvertSharedLabel  ActionID = "convert_shared_label"
)

// ActionCreateTaskFromMessage is the callback id of the message shortcut.
const ActionCreateTaskFromMessage ActionID = "create_task_from_message"

var blockActions = []ActionID{
	ActionAuthorize,
	ActionCreateTaskInProject,
	ActionViewProject,
	ActionShareProject,
	ActionViewTask,
	ActionShareTask,
	ActionCompleteTask,
	ActionShareSection,
	ActionShareLabel,
	ActionShareComment,
	ActionGetComments,
	ActionDeleteTask,
	ActionDeleteSection,
	ActionDeleteLabel,
	ActionDeleteComment,
	ActionRenameSharedLabel,
	ActionRemoveSharedLabel,
	ActionConvertSharedLabel,
}

// BlockActions returns every action id the block-action router must handle.
func BlockActions() []ActionID {
	out := make([]ActionID, len(blockActions))
	copy(out, blockActions)
	return out
}

// ParseBlockAction maps a wire action id to a known block action.
func ParseBlockAction(s string) (ActionID, bool) {
	for _, a := range blockActions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// MessageActions are shortcut callback ids handled by the action-button router.
func MessageActions() []ActionID {
	return []ActionID{ActionCreateTaskFromMessage}
}

func ParseMessageAction(s string) (ActionID, bool) {
	for _, a := range MessageActions() {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ViewKind identifies a modal type.
type ViewKind string

const (
	ViewCreateTask        ViewKind = "create_task"
	ViewDeleteTask        ViewKind = "delete_task"
	ViewDeleteSection     ViewKind = "delete_section"
	ViewDeleteLabel       ViewKind = "delete_label"
	ViewDeleteComment     ViewKind = "delete_comment"
	ViewDeleteSharedLabel ViewKind = "delete_shared_label"
	ViewRenameSharedLabel ViewKind = "rename_shared_label"
)

var viewKinds = []ViewKind{
	ViewCreateTask,
	ViewDeleteTask,
	ViewDeleteSection,
	ViewDeleteLabel,
	ViewDeleteComment,
	ViewDeleteSharedLabel,
	ViewRenameSharedLabel,
}

func ViewKinds() []ViewKind {
	out := make([]ViewKind, len(viewKinds))
	copy(out, viewKinds)
	return out
}

func ParseViewKind(s string) (ViewKind, bool) {
	for _, k := range viewKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

const viewIDSeparator = "#"

// ViewID joins a modal kind and the room it was opened from.
func ViewID(kind ViewKind, roomID string) string {
	return string(kind) + viewIDSeparator + roomID
}

// ParseViewID splits a view id into its kind and room id. The room id is
// empty when the id carries no suffix.
func ParseViewID(s string) (ViewKind, string, bool) {
	kindPart, roomID, _ := strings.Cut(s, viewIDSeparator)
	kind, ok := ParseViewKind(kindPart)
	if !ok {
		return "", "", false
	}
	return kind, roomID, true
}

// DeleteView maps a delete action to the confirmation modal kind.
func DeleteView(action ActionID) (ViewKind, bool) {
	switch action {
	case ActionDeleteTask:
		return ViewDeleteTask, true
	case ActionDeleteSection:
		return ViewDeleteSection, true
	case ActionDeleteLabel:
		return ViewDeleteLabel, true
	case ActionDeleteComment:
		return ViewDeleteComment, true
	case ActionRemoveSharedLabel:
		return ViewDeleteSharedLabel, true
	default:
		return "", false
	}
}

// Block ids of list rows. Rows carry the item id as suffix so every
// block in a message is unique.
const (
	BlockProjectActions     = "project_actions"
	BlockTaskActions        = "task_actions"
	BlockSectionActions     = "section_actions"
	BlockLabelActions       = "label_actions"
	BlockSharedLabelActions = "shared_label_actions"
	BlockCommentActions     = "comment_actions"
)

func RowBlockID(prefix, itemID string) string {
	return prefix + ":" + itemID
}

// Modal input blocks. Each input uses the same string for block and action id.
const (
	InputProjectID    = "task_project_id"
	InputTaskName     = "task_name"
	InputPriority     = "task_priority"
	InputDescription  = "task_description"
	InputDueDate      = "task_due_date"
	InputSharedLabel  = "shared_label_new_name"
	BlockDeleteNotice = "delete_confirmation"
)
