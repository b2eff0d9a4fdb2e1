package ui_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

func TestBuilders_ArePure(t *testing.T) {
	btn := ui.Button{Label: "Share", ActionID: ui.ActionShareTask, Value: "t1", Style: ui.StylePrimary}

	tests := []struct {
		name  string
		build func() any
	}{
		{"button", func() any { return ui.NewButton(btn) }},
		{"section", func() any { return ui.Section("*Buy milk*", ui.NewButton(btn)) }},
		{"context", func() any { return ui.Context("Priority: Urgent") }},
		{"actions", func() any { return ui.Buttons("task_actions:t1", btn, btn) }},
		{"input", func() any {
			return ui.NewInput(ui.Input{ID: ui.InputTaskName, Label: "Task Name", Placeholder: "Name"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.build(), tt.build()
			if !reflect.DeepEqual(a, b) {
				t.Errorf("expected identical output, got %#v and %#v", a, b)
			}
		})
	}
}

func TestNewButton_Styles(t *testing.T) {
	tests := []struct {
		style ui.ButtonStyle
		want  slack.Style
	}{
		{ui.StyleDefault, slack.StyleDefault},
		{ui.StylePrimary, slack.StylePrimary},
		{ui.StyleSuccess, slack.StylePrimary},
		{ui.StyleDanger, slack.StyleDanger},
		{ui.StyleWarning, slack.StyleDanger},
		{ui.StyleSecondary, slack.StyleDefault},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			got := ui.NewButton(ui.Button{Label: "x", Style: tt.style})
			if got.Style != tt.want {
				t.Errorf("got %q, want %q", got.Style, tt.want)
			}
		})
	}
}

func TestNewButton_Fields(t *testing.T) {
	got := ui.NewButton(ui.Button{Label: "Open", ActionID: ui.ActionViewTask, Value: "t1", URL: "https://todoist.com/t1"})

	if got.ActionID != "view_task" || got.Value != "t1" {
		t.Errorf("unexpected ids %q / %q", got.ActionID, got.Value)
	}
	if got.URL != "https://todoist.com/t1" {
		t.Errorf("expected url, got %q", got.URL)
	}
	if got.Text.Type != slack.PlainTextType || got.Text.Text != "Open" {
		t.Errorf("unexpected text %+v", got.Text)
	}
}

func TestSection_Accessory(t *testing.T) {
	plain := ui.Section("hello", nil)
	if plain.Accessory != nil {
		t.Error("expected no accessory")
	}
	if plain.Text.Type != slack.MarkdownType {
		t.Errorf("expected mrkdwn, got %s", plain.Text.Type)
	}

	with := ui.Section("hello", ui.NewButton(ui.Button{Label: "Go"}))
	if with.Accessory == nil || with.Accessory.ButtonElement == nil {
		t.Fatalf("expected button accessory, got %+v", with.Accessory)
	}
}

func TestNewInput_Kinds(t *testing.T) {
	text := ui.NewInput(ui.Input{ID: "desc", Label: "Description", InitialValue: "hi", Multiline: true, Optional: true})
	ti, ok := text.Element.(*slack.PlainTextInputBlockElement)
	if !ok {
		t.Fatalf("expected plain text input, got %T", text.Element)
	}
	if !ti.Multiline || ti.InitialValue != "hi" || ti.ActionID != "desc" {
		t.Errorf("unexpected text input %+v", ti)
	}
	if !text.Optional || text.BlockID != "desc" {
		t.Errorf("unexpected block %+v", text)
	}

	date := ui.NewInput(ui.Input{ID: "due", Label: "Due", Kind: ui.InputDate})
	if _, ok := date.Element.(*slack.DatePickerBlockElement); !ok {
		t.Fatalf("expected date picker, got %T", date.Element)
	}

	sel := ui.NewInput(ui.Input{
		ID:           "prio",
		Label:        "Priority",
		Kind:         ui.InputSelect,
		InitialValue: "2",
		Options:      []ui.Option{{Text: "Urgent", Value: "4"}, {Text: "Normal", Value: "2"}},
	})
	se, ok := sel.Element.(*slack.SelectBlockElement)
	if !ok {
		t.Fatalf("expected select, got %T", sel.Element)
	}
	if se.InitialOption == nil || se.InitialOption.Value != "2" {
		t.Errorf("expected initial option 2, got %+v", se.InitialOption)
	}
	if len(se.Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(se.Options))
	}
}

func TestButtons_RowJSON(t *testing.T) {
	row := ui.Buttons("task_actions:t1",
		ui.Button{Label: "Share", ActionID: ui.ActionShareTask, Value: "t1"},
		ui.Button{Label: "Delete", ActionID: ui.ActionDeleteTask, Value: "t1", Style: ui.StyleDanger},
	)
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Type     string `json:"type"`
		BlockID  string `json:"block_id"`
		Elements []struct {
			ActionID string `json:"action_id"`
			Value    string `json:"value"`
			Style    string `json:"style"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != "actions" || decoded.BlockID != "task_actions:t1" {
		t.Errorf("unexpected row %+v", decoded)
	}
	if len(decoded.Elements) != 2 || decoded.Elements[1].Style != "danger" || decoded.Elements[1].Value != "t1" {
		t.Errorf("unexpected elements %+v", decoded.Elements)
	}
}

func TestLinkAndEscape(t *testing.T) {
	if got := ui.Link("https://x.test", "a <b> & c"); got != "<https://x.test|a &lt;b&gt; &amp; c>" {
		t.Errorf("unexpected link %q", got)
	}
	if got := ui.Link("", "plain"); got != "plain" {
		t.Errorf("unexpected link %q", got)
	}
}

func TestSection_ClipsLongText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "hello", "hello"},
		{"at limit", strings.Repeat("a", ui.MaxSectionText), strings.Repeat("a", ui.MaxSectionText)},
		{"over limit", strings.Repeat("a", 4000), strings.Repeat("a", ui.MaxSectionText-1) + "…"},
		{"entity at cut", strings.Repeat("a", ui.MaxSectionText-3) + "&amp;bbb", strings.Repeat("a", ui.MaxSectionText-3) + "…"},
		{"multibyte", strings.Repeat("é", 3500), strings.Repeat("é", ui.MaxSectionText-1) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ui.Section(tt.text, nil).Text.Text
			if got != tt.want {
				t.Errorf("got %d characters ending %q", len([]rune(got)), string([]rune(got)[len([]rune(got))-5:]))
			}
		})
	}
}

func TestNewInput_ClipsInitialValue(t *testing.T) {
	in := ui.NewInput(ui.Input{ID: "desc", Label: "Description", InitialValue: strings.Repeat("x", 5000)})

	got := in.Element.(*slack.PlainTextInputBlockElement).InitialValue
	if n := len([]rune(got)); n != ui.MaxInputValue {
		t.Errorf("expected %d characters, got %d", ui.MaxInputValue, n)
	}
}

func TestTruncate(t *testing.T) {
	if got := ui.Truncate("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
	if got := ui.Truncate("abc", 4); got != "abc" {
		t.Errorf("got %q", got)
	}
}
