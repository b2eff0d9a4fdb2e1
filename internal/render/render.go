// Package render turns Todoist records into chat blocks and share lines.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

// MaxBlocks is the block limit of a single chat message.
const MaxBlocks = 50

const fanOutLimit = 8

// Each builds the blocks of every item concurrently and concatenates them
// in input order.
func Each[T any](items []T, build func(T) []slack.Block) []slack.Block {
	var blocks []slack.Block
	for _, p := range parts(items, build) {
		blocks = append(blocks, p...)
	}
	return blocks
}

func parts[T any](items []T, build func(T) []slack.Block) [][]slack.Block {
	out := make([][]slack.Block, len(items))

	var g errgroup.Group
	g.SetLimit(fanOutLimit)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			out[i] = build(item)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// list renders whole items within budget blocks. When some items do not
// fit, one block of the budget goes to a "Showing n of m" line.
func list[T any](items []T, budget int, build func(T) []slack.Block) []slack.Block {
	total := len(items)
	// Every item yields at least one block.
	if len(items) > budget {
		items = items[:budget]
	}
	built := parts(items, build)

	shown := fit(built, budget)
	if shown < total {
		shown = fit(built, budget-1)
	}

	var blocks []slack.Block
	for _, p := range built[:shown] {
		blocks = append(blocks, p...)
	}
	if shown < total {
		blocks = append(blocks, ui.Context(fmt.Sprintf("Showing %d of %d. Open Todoist to see the rest.", shown, total)))
	}
	return blocks
}

// fit counts the leading items whose blocks add up to at most budget.
func fit(built [][]slack.Block, budget int) int {
	used := 0
	for i, p := range built {
		if used+len(p) > budget {
			return i
		}
		used += len(p)
	}
	return len(built)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func dueInfo(d *model.Due) string {
	if d == nil || (d.String == "" && d.Date == "") {
		return "No due date"
	}
	return "Due: " + d.Display()
}

// postedAt formats an RFC 3339 timestamp; other values pass through.
func postedAt(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

func Projects(projects []model.Project) []slack.Block {
	return list(projects, MaxBlocks, func(p model.Project) []slack.Block {
		return []slack.Block{
			ui.Section("*"+ui.Escape(p.Name)+"*", nil),
			ui.Context(fmt.Sprintf("Color: %s | Favourite: %s", capitalize(p.Color), yesNo(p.IsFavorite))),
			ui.Buttons(ui.RowBlockID(ui.BlockProjectActions, p.ID),
				ui.Button{Label: "View", ActionID: ui.ActionViewProject, Value: p.ID, Style: ui.StyleSuccess, URL: p.URL},
				ui.Button{Label: "Share", ActionID: ui.ActionShareProject, Value: p.ID, Style: ui.StylePrimary},
				ui.Button{Label: "Create Task", ActionID: ui.ActionCreateTaskInProject, Value: p.ID},
				ui.Button{Label: "Comments", ActionID: ui.ActionGetComments, Value: p.ID},
			),
		}
	})
}

func Tasks(tasks []model.Task) []slack.Block {
	return list(tasks, MaxBlocks, func(t model.Task) []slack.Block {
		return []slack.Block{
			ui.Section("*"+ui.Escape(t.Content)+"*", nil),
			ui.Context(fmt.Sprintf("%s | Priority: %s | Labels: %s", dueInfo(t.Due), t.Priority.Label(), t.LabelList())),
			ui.Buttons(ui.RowBlockID(ui.BlockTaskActions, t.ID),
				ui.Button{Label: "View", ActionID: ui.ActionViewTask, Value: t.ID, Style: ui.StyleSuccess, URL: t.URL},
				ui.Button{Label: "Share", ActionID: ui.ActionShareTask, Value: t.ID, Style: ui.StylePrimary},
				ui.Button{Label: "Complete", ActionID: ui.ActionCompleteTask, Value: t.ID},
				ui.Button{Label: "Comments", ActionID: ui.ActionGetComments, Value: t.ID},
				ui.Button{Label: "Delete", ActionID: ui.ActionDeleteTask, Value: t.ID, Style: ui.StyleDanger},
			),
		}
	})
}

func Sections(sections []model.Section) []slack.Block {
	return list(sections, MaxBlocks, func(s model.Section) []slack.Block {
		return []slack.Block{
			ui.Section("*"+ui.Escape(s.Name)+"*", nil),
			ui.Context(fmt.Sprintf("Project ID: %s | Order: %d", s.ProjectID, s.Order)),
			ui.Buttons(ui.RowBlockID(ui.BlockSectionActions, s.ID),
				ui.Button{Label: "Share", ActionID: ui.ActionShareSection, Value: s.ID, Style: ui.StylePrimary},
				ui.Button{Label: "Delete", ActionID: ui.ActionDeleteSection, Value: s.ID, Style: ui.StyleDanger},
			),
		}
	})
}

func Labels(labels []model.Label) []slack.Block {
	return list(labels, MaxBlocks, func(l model.Label) []slack.Block {
		return []slack.Block{
			ui.Section("*"+ui.Escape(l.Name)+"*", nil),
			ui.Context(fmt.Sprintf("Color: %s | Order: %d | Favorite: %s", capitalize(l.Color), l.Order, yesNo(l.IsFavorite))),
			ui.Buttons(ui.RowBlockID(ui.BlockLabelActions, l.ID),
				ui.Button{Label: "Share", ActionID: ui.ActionShareLabel, Value: l.ID, Style: ui.StylePrimary},
				ui.Button{Label: "Delete", ActionID: ui.ActionDeleteLabel, Value: l.ID, Style: ui.StyleDanger},
			),
		}
	})
}

func SharedLabels(labels []model.SharedLabel) []slack.Block {
	rows := list(labels, MaxBlocks-1, func(l model.SharedLabel) []slack.Block {
		return []slack.Block{
			ui.Section(ui.Escape(l.Name), nil),
			ui.Buttons(ui.RowBlockID(ui.BlockSharedLabelActions, l.Name),
				ui.Button{Label: "Rename", ActionID: ui.ActionRenameSharedLabel, Value: l.Name},
				ui.Button{Label: "Remove", ActionID: ui.ActionRemoveSharedLabel, Value: l.Name, Style: ui.StyleDanger},
				ui.Button{Label: "Convert to Personal", ActionID: ui.ActionConvertSharedLabel, Value: l.Name, Style: ui.StylePrimary},
			),
		}
	})
	return append([]slack.Block{ui.Section("📑 *Shared Labels*", nil)}, rows...)
}

func Comments(comments []model.Comment) []slack.Block {
	return list(comments, MaxBlocks, func(c model.Comment) []slack.Block {
		blocks := []slack.Block{
			ui.Section(ui.Escape(c.Content), nil),
			ui.Context("Posted: " + postedAt(c.PostedAt)),
			ui.Buttons(ui.RowBlockID(ui.BlockCommentActions, c.ID),
				ui.Button{Label: "Share", ActionID: ui.ActionShareComment, Value: c.ID, Style: ui.StylePrimary},
				ui.Button{Label: "Delete", ActionID: ui.ActionDeleteComment, Value: c.ID, Style: ui.StyleDanger},
			),
		}
		if c.Attachment != nil {
			blocks = append(blocks, ui.Context("📎 Attachment: "+ui.Link(c.Attachment.FileURL, c.Attachment.FileName)))
		}
		return blocks
	})
}
