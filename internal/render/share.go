package render

import (
	"fmt"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

// Share lines are posted to the whole room.

func ShareProject(p model.Project) string {
	return fmt.Sprintf("%s | Comments: %d | Color: %s | Favourite: %s",
		ui.Link(p.URL, p.Name), p.CommentCount, p.Color, yesNo(p.IsFavorite))
}

func ShareTask(t model.Task) string {
	return fmt.Sprintf("%s | %s | Priority: %s | Labels: %s | Comments: %d",
		ui.Link(t.URL, t.Content), dueInfo(t.Due), t.Priority.Label(), t.LabelList(), t.CommentCount)
}

func ShareSection(s model.Section) string {
	return fmt.Sprintf("Section: %s | Project ID: %s | Order: %d", ui.Escape(s.Name), s.ProjectID, s.Order)
}

func ShareLabel(l model.Label) string {
	return fmt.Sprintf("Label: %s | Color: %s | Order: %d | Favorite: %s",
		ui.Escape(l.Name), l.Color, l.Order, yesNo(l.IsFavorite))
}

func ShareComment(c model.Comment) string {
	line := fmt.Sprintf("%s | Posted: %s", ui.Escape(c.Content), postedAt(c.PostedAt))
	if c.Attachment != nil {
		line += " | Attachment: " + ui.Link(c.Attachment.FileURL, c.Attachment.FileName)
	}
	return line
}
