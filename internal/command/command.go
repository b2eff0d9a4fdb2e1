// Package command executes the /todoist slash command.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/modal"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/render"
	"github.com/jannatkhandev/App-Todoist/internal/service"
	"github.com/jannatkhandev/App-Todoist/internal/ui"
)

const Name = "/todoist"

type Subcommand string

const (
	Help          Subcommand = "help"
	Auth          Subcommand = "auth"
	Task          Subcommand = "task"
	Tasks         Subcommand = "tasks"
	Projects      Subcommand = "projects"
	Sections      Subcommand = "sections"
	Labels        Subcommand = "labels"
	SharedLabels  Subcommand = "shared-labels"
	Notifications Subcommand = "notifications"
)

var subcommands = []Subcommand{Help, Auth, Task, Tasks, Projects, Sections, Labels, SharedLabels, Notifications}

func Subcommands() []Subcommand {
	out := make([]Subcommand, len(subcommands))
	copy(out, subcommands)
	return out
}

func ParseSubcommand(s string) (Subcommand, bool) {
	s = strings.ToLower(s)
	for _, sc := range subcommands {
		if string(sc) == s {
			return sc, true
		}
	}
	return "", false
}

const helpText = "Todoist App provides you the following slash commands, /todoist:\n\n" +
	"1. `help:` shows this list.\n" +
	"2. `auth:` starts the process to authorize your Todoist Account.\n" +
	"3. `task:` opens modal to create a new task.\n" +
	"4. `projects:` fetches the projects you are part of.\n" +
	"5. `tasks:` fetches the active tasks.\n" +
	"6. `sections:` fetches the sections of your projects.\n" +
	"7. `labels:` fetches your personal labels.\n" +
	"8. `shared-labels:` fetches your shared labels.\n" +
	"9. `notifications [on|off]:` shows or changes whether the app may send you direct messages.\n"

// Request is one invocation of the slash command.
type Request struct {
	User      model.User
	Room      model.Room
	TriggerID string
	Args      []string
}

type ProjectFetcher interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Project, error)
}

type TaskFetcher interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Task, error)
}

type SectionFetcher interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Section, error)
}

type LabelFetcher interface {
	Fetch(ctx context.Context, user model.User, id string) ([]model.Label, error)
}

type SharedLabelFetcher interface {
	Fetch(ctx context.Context, user model.User) ([]model.SharedLabel, error)
}

type Authorizer interface {
	AuthorizationURL(userID string) (string, error)
}

// Notifier sends preference-gated direct messages and manages the
// preference itself.
type Notifier interface {
	Enabled(ctx context.Context, userID string) (bool, error)
	SetEnabled(ctx context.Context, userID string, enabled bool) error
	DirectMessage(ctx context.Context, user model.User, msg host.Message) (bool, error)
}

type Deps struct {
	Messenger    host.Messenger
	Notifier     Notifier
	Auth         Authorizer
	Projects     ProjectFetcher
	Tasks        TaskFetcher
	Sections     SectionFetcher
	Labels       LabelFetcher
	SharedLabels SharedLabelFetcher
	Logger       *slog.Logger
}

type Router struct {
	Deps
}

func NewRouter(deps Deps) *Router {
	return &Router{Deps: deps}
}

// Execute runs one slash command. Failures are reported to the user; the
// returned error only signals that the reply itself could not be delivered.
func (r *Router) Execute(ctx context.Context, req Request) error {
	if len(req.Args) == 0 {
		return r.help(ctx, req)
	}
	sub, ok := ParseSubcommand(req.Args[0])
	if !ok {
		return r.help(ctx, req)
	}

	r.Logger.DebugContext(ctx, "slash command", "subcommand", sub, "user_id", req.User.ID, "room_id", req.Room.ID)

	switch sub {
	case Help:
		return r.help(ctx, req)
	case Auth:
		return r.authorize(ctx, req)
	case Task:
		return r.createTask(ctx, req)
	case Tasks:
		return listing(ctx, r, req, "tasks",
			"No tasks found for the user.",
			func() ([]model.Task, error) { return r.Tasks.Fetch(ctx, req.User, "") },
			render.Tasks)
	case Projects:
		return listing(ctx, r, req, "projects",
			"No projects found for the user. Create one using the Todoist app or website.",
			func() ([]model.Project, error) { return r.Projects.Fetch(ctx, req.User, "") },
			render.Projects)
	case Sections:
		return listing(ctx, r, req, "sections",
			"No sections found for the user. Create one using the Todoist app or website.",
			func() ([]model.Section, error) { return r.Sections.Fetch(ctx, req.User, "") },
			render.Sections)
	case Labels:
		return listing(ctx, r, req, "labels",
			"No personal labels found for the user. Create one using the Todoist app or website.",
			func() ([]model.Label, error) { return r.Labels.Fetch(ctx, req.User, "") },
			render.Labels)
	case SharedLabels:
		return listing(ctx, r, req, "shared labels",
			"No shared labels found. Shared labels appear when collaborators add labels to shared tasks.",
			func() ([]model.SharedLabel, error) { return r.SharedLabels.Fetch(ctx, req.User) },
			render.SharedLabels)
	case Notifications:
		return r.notifications(ctx, req)
	default:
		r.Logger.WarnContext(ctx, "unhandled subcommand", "subcommand", sub)
		return r.help(ctx, req)
	}
}

func (r *Router) notify(ctx context.Context, req Request, text string) error {
	return r.Messenger.Notify(ctx, req.Room, req.User, host.Message{Text: text})
}

func (r *Router) help(ctx context.Context, req Request) error {
	return r.notify(ctx, req, helpText)
}

func listing[T any](ctx context.Context, r *Router, req Request, noun, empty string, fetch func() ([]T, error), build func([]T) []slack.Block) error {
	items, err := fetch()
	if err != nil {
		r.Logger.WarnContext(ctx, "slash command failed", "resource", noun, "user_id", req.User.ID, "error", err)
		return r.notify(ctx, req, fmt.Sprintf("❗️ Unable to retrieve %s! \n Error: %s", noun, service.Message(err)))
	}
	if len(items) == 0 {
		return r.notify(ctx, req, empty)
	}
	return r.Messenger.Notify(ctx, req.Room, req.User, host.Message{
		Text:   fmt.Sprintf("Your Todoist %s", noun),
		Blocks: build(items),
	})
}

func (r *Router) authorize(ctx context.Context, req Request) error {
	url, err := r.Auth.AuthorizationURL(req.User.ID)
	if err != nil {
		r.Logger.ErrorContext(ctx, "authorization url failed", "user_id", req.User.ID, "error", err)
		return r.notify(ctx, req, "❗️ Unable to start the authorization! \n Error: "+service.Message(err))
	}

	msg := host.Message{
		Text: "Authorize access to your Todoist account",
		Blocks: []slack.Block{
			ui.Section("Please click the button below to authorize access to your Todoist account 👇",
				ui.NewButton(ui.Button{Label: "Authorize", ActionID: ui.ActionAuthorize, Style: ui.StylePrimary, URL: url})),
		},
	}

	sent, err := r.Notifier.DirectMessage(ctx, req.User, msg)
	if err != nil {
		r.Logger.WarnContext(ctx, "authorization message failed", "user_id", req.User.ID, "error", err)
	}
	if sent {
		return nil
	}
	return r.Messenger.Notify(ctx, req.Room, req.User, msg)
}

func (r *Router) createTask(ctx context.Context, req Request) error {
	if req.TriggerID == "" {
		return r.notify(ctx, req, "❗️ Invalid Trigger ID")
	}
	if err := r.Messenger.OpenView(ctx, req.TriggerID, modal.CreateTask(req.Room.ID, "", "")); err != nil {
		return r.notify(ctx, req, "❗️ Unable to open the task form! \n Error: "+service.Message(err))
	}
	return nil
}

const notificationsUsage = "Usage: `/todoist notifications [on|off]`"

func (r *Router) notifications(ctx context.Context, req Request) error {
	if len(req.Args) < 2 {
		enabled, err := r.Notifier.Enabled(ctx, req.User.ID)
		if err != nil {
			r.Logger.ErrorContext(ctx, "notification setting lookup failed", "user_id", req.User.ID, "error", err)
			return r.notify(ctx, req, "❗️ Unable to retrieve your notification setting! \n Error: "+service.Message(err))
		}
		return r.notify(ctx, req, fmt.Sprintf("Direct messages are currently %s. %s", onOff(enabled), notificationsUsage))
	}

	var enabled bool
	switch strings.ToLower(req.Args[1]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return r.notify(ctx, req, notificationsUsage)
	}

	if err := r.Notifier.SetEnabled(ctx, req.User.ID, enabled); err != nil {
		r.Logger.ErrorContext(ctx, "notification setting update failed", "user_id", req.User.ID, "error", err)
		return r.notify(ctx, req, "❗️ Unable to update your notification setting! \n Error: "+service.Message(err))
	}
	return r.notify(ctx, req, fmt.Sprintf("✅ Direct messages turned %s.", onOff(enabled)))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
