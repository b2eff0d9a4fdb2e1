// Package ui builds Block Kit layout primitives. Every function is pure:
// the same input always yields a structurally identical block.
package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/slack-go/slack"
)

type ButtonStyle string

const (
	StyleDefault   ButtonStyle = ""
	StylePrimary   ButtonStyle = "primary"
	StyleSecondary ButtonStyle = "secondary"
	StyleDanger    ButtonStyle = "danger"
	StyleWarning   ButtonStyle = "warning"
	StyleSuccess   ButtonStyle = "success"
)

// slackStyle maps onto the two accent styles Slack renders.
func (s ButtonStyle) slackStyle() slack.Style {
	switch s {
	case StylePrimary, StyleSuccess:
		return slack.StylePrimary
	case StyleDanger, StyleWarning:
		return slack.StyleDanger
	default:
		return slack.StyleDefault
	}
}

type Button struct {
	Label    string
	ActionID ActionID
	Value    string
	Style    ButtonStyle
	// URL makes the button open a link in the browser.
	URL string
}

func NewButton(b Button) *slack.ButtonBlockElement {
	btn := slack.NewButtonBlockElement(string(b.ActionID), b.Value, PlainText(b.Label))
	btn.Style = b.Style.slackStyle()
	if b.URL != "" {
		btn.URL = b.URL
	}
	return btn
}

func PlainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func Markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// Section is a markdown text block with an optional accessory element.
func Section(text string, accessory slack.BlockElement) *slack.SectionBlock {
	var acc *slack.Accessory
	if accessory != nil {
		acc = slack.NewAccessory(accessory)
	}
	return slack.NewSectionBlock(Markdown(clipMarkup(text, MaxSectionText)), nil, acc)
}

// Context is a secondary annotation line.
func Context(text string) *slack.ContextBlock {
	return slack.NewContextBlock("", Markdown(text))
}

// Actions groups buttons and controls into one interactive row.
func Actions(blockID string, elements ...slack.BlockElement) *slack.ActionBlock {
	return slack.NewActionBlock(blockID, elements...)
}

func Buttons(blockID string, buttons ...Button) *slack.ActionBlock {
	elements := make([]slack.BlockElement, len(buttons))
	for i, b := range buttons {
		elements[i] = NewButton(b)
	}
	return Actions(blockID, elements...)
}

func Divider() *slack.DividerBlock {
	return slack.NewDividerBlock()
}

type Option struct {
	Text  string
	Value string
}

func newOption(o Option) *slack.OptionBlockObject {
	return slack.NewOptionBlockObject(o.Value, PlainText(o.Text), nil)
}

// StaticSelect builds a single-choice select. initial selects the option
// with that value when present.
func StaticSelect(actionID, placeholder string, options []Option, initial string) *slack.SelectBlockElement {
	opts := make([]*slack.OptionBlockObject, len(options))
	for i, o := range options {
		opts[i] = newOption(o)
	}
	sel := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, PlainText(placeholder), actionID, opts...)
	for i, o := range options {
		if o.Value == initial {
			sel.InitialOption = opts[i]
			break
		}
	}
	return sel
}

type InputKind int

const (
	InputText InputKind = iota
	InputDate
	InputSelect
)

type Input struct {
	// ID is used as both block id and action id.
	ID           string
	Label        string
	Placeholder  string
	InitialValue string
	Kind         InputKind
	Multiline    bool
	Optional     bool
	Options      []Option
}

func NewInput(in Input) *slack.InputBlock {
	var element slack.BlockElement
	switch in.Kind {
	case InputDate:
		dp := slack.NewDatePickerBlockElement(in.ID)
		if in.Placeholder != "" {
			dp.Placeholder = PlainText(in.Placeholder)
		}
		dp.InitialDate = in.InitialValue
		element = dp
	case InputSelect:
		element = StaticSelect(in.ID, in.Placeholder, in.Options, in.InitialValue)
	default:
		var placeholder *slack.TextBlockObject
		if in.Placeholder != "" {
			placeholder = PlainText(in.Placeholder)
		}
		ti := slack.NewPlainTextInputBlockElement(placeholder, in.ID)
		ti.InitialValue = Truncate(in.InitialValue, MaxInputValue)
		ti.Multiline = in.Multiline
		element = ti
	}

	block := slack.NewInputBlock(in.ID, PlainText(in.Label), nil, element)
	block.Optional = in.Optional
	return block
}

// Character limits Slack enforces on section text and input values.
const (
	MaxSectionText = 3000
	MaxInputValue  = 3000
)

// Truncate shortens s to at most n characters, ending the cut with an
// ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// clipMarkup truncates mrkdwn without leaving half an entity at the cut.
func clipMarkup(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	head := string([]rune(s)[:n-1])
	if i := strings.LastIndexByte(head, '&'); i >= 0 && len(head)-i < len("&amp;") && !strings.Contains(head[i:], ";") {
		head = head[:i]
	}
	return head + "…"
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape makes user text safe inside mrkdwn.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Link renders a mrkdwn hyperlink. Without a URL only the text is shown.
func Link(url, text string) string {
	if url == "" {
		return Escape(text)
	}
	return "<" + url + "|" + Escape(text) + ">"
}
