package modal

import (
	"encoding/json"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

// Submit is carried in private_metadata: the action that opened the modal
// and the item it targets.
type Submit struct {
	ActionID ui.ActionID `json:"action_id"`
	Value    string      `json:"value"`
}

func (s Submit) encode() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// ParseSubmit decodes private_metadata. Empty metadata yields a zero Submit.
func ParseSubmit(metadata string) (Submit, error) {
	var s Submit
	if metadata == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(metadata), &s); err != nil {
		return Submit{}, fmt.Errorf("invalid view metadata: %w", err)
	}
	return s, nil
}

var priorityOptions = []ui.Option{
	{Text: "Urgent", Value: "4"},
	{Text: "High", Value: "3"},
	{Text: "Normal", Value: "2"},
	{Text: "Low", Value: "1"},
}

const defaultPriority = "2"

// CreateTask builds the task form. The project field only appears when a
// project triggered the modal; description pre-fills the description field.
func CreateTask(roomID, projectID, description string) slack.ModalViewRequest {
	blocks := make([]slack.Block, 0, 5)
	if projectID != "" {
		blocks = append(blocks, ui.NewInput(ui.Input{
			ID:           ui.InputProjectID,
			Label:        "Project ID",
			InitialValue: projectID,
		}))
	}
	blocks = append(blocks,
		ui.NewInput(ui.Input{
			ID:          ui.InputTaskName,
			Label:       "Task Name",
			Placeholder: "Enter the task name",
		}),
		ui.NewInput(ui.Input{
			ID:           ui.InputPriority,
			Label:        "Priority",
			Placeholder:  "Select a priority",
			Kind:         ui.InputSelect,
			Options:      priorityOptions,
			InitialValue: defaultPriority,
		}),
		ui.NewInput(ui.Input{
			ID:           ui.InputDescription,
			Label:        "Description",
			Placeholder:  "Describe the task",
			InitialValue: description,
			Multiline:    true,
			Optional:     true,
		}),
		ui.NewInput(ui.Input{
			ID:          ui.InputDueDate,
			Label:       "Due Date",
			Placeholder: "Pick a date",
			Kind:        ui.InputDate,
			Optional:    true,
		}),
	)

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: ui.ViewID(ui.ViewCreateTask, roomID),
		Title:      ui.PlainText("Create Task"),
		Submit:     ui.PlainText("Create"),
		Close:      ui.PlainText("Cancel"),
		Blocks:     slack.Blocks{BlockSet: blocks},
	}
}

// DeleteConfirmation asks the user to confirm deleting one item. The
// originating delete action and item id travel in the metadata so the
// submission resolves the same delete branch.
func DeleteConfirmation(itemType, itemName, itemID string, action ui.ActionID, roomID string) (slack.ModalViewRequest, error) {
	kind, ok := ui.DeleteView(action)
	if !ok {
		return slack.ModalViewRequest{}, fmt.Errorf("no delete confirmation for action %q", action)
	}

	text := fmt.Sprintf("Are you sure you want to delete %s: *%s*?", itemType, ui.Escape(itemName))
	notice := ui.Section(text, nil)
	notice.BlockID = ui.BlockDeleteNotice

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      ui.ViewID(kind, roomID),
		Title:           ui.PlainText("Confirm Deletion"),
		Submit:          ui.PlainText("Delete"),
		Close:           ui.PlainText("Cancel"),
		PrivateMetadata: Submit{ActionID: action, Value: itemID}.encode(),
		Blocks:          slack.Blocks{BlockSet: []slack.Block{notice}},
	}, nil
}

// RenameSharedLabel asks for the new name of a shared label.
func RenameSharedLabel(name, roomID string) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      ui.ViewID(ui.ViewRenameSharedLabel, roomID),
		Title:           ui.PlainText("Rename Shared Label"),
		Submit:          ui.PlainText("Rename"),
		Close:           ui.PlainText("Cancel"),
		PrivateMetadata: Submit{ActionID: ui.ActionRenameSharedLabel, Value: name}.encode(),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			ui.NewInput(ui.Input{
				ID:           ui.InputSharedLabel,
				Label:        "New name",
				InitialValue: name,
			}),
		}},
	}
}
