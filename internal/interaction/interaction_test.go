package interaction_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/slack-go/slack"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/service"
)

type delivered struct {
	kind string
	room string
	text string
	msg  host.Message
}

type mockMessenger struct {
	out   []delivered
	views []slack.ModalViewRequest
}

func (m *mockMessenger) Notify(_ context.Context, room model.Room, _ model.User, msg host.Message) error {
	m.out = append(m.out, delivered{"notify", room.ID, msg.Text, msg})
	return nil
}

func (m *mockMessenger) Send(_ context.Context, room model.Room, msg host.Message) error {
	m.out = append(m.out, delivered{"send", room.ID, msg.Text, msg})
	return nil
}

func (m *mockMessenger) DirectMessage(_ context.Context, _ model.User, msg host.Message) error {
	m.out = append(m.out, delivered{"direct", "", msg.Text, msg})
	return nil
}

func (m *mockMessenger) OpenView(_ context.Context, _ string, view slack.ModalViewRequest) error {
	m.views = append(m.views, view)
	return nil
}

type mockDirectory struct {
	roomFn func(id string) (model.Room, error)
}

func (m *mockDirectory) Room(_ context.Context, id string) (model.Room, error) {
	return m.roomFn(id)
}

func (m *mockDirectory) User(_ context.Context, id string) (model.User, error) {
	return model.User{ID: id}, nil
}

// fakeTodoist implements every service interface and records calls.
type fakeTodoist struct {
	calls []string

	projects []model.Project
	tasks    []model.Task
	sections []model.Section
	labels   []model.Label
	comments []model.Comment

	commentFilter service.CommentFilter
	created       model.CreateTaskInput
	renamed       [2]string
	err           error
	lookupCtx     context.Context
}

func (f *fakeTodoist) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

type projects struct{ *fakeTodoist }

func (p projects) Fetch(_ context.Context, _ model.User, id string) ([]model.Project, error) {
	return p.projects, p.record("projects.fetch " + id)
}

type tasks struct{ *fakeTodoist }

func (t tasks) Fetch(ctx context.Context, _ model.User, id string) ([]model.Task, error) {
	t.lookupCtx = ctx
	return t.tasks, t.record("tasks.fetch " + id)
}

func (t tasks) Create(_ context.Context, _ model.User, input model.CreateTaskInput) (model.Task, error) {
	t.created = input
	if err := t.record("tasks.create"); err != nil {
		return model.Task{}, err
	}
	return model.Task{ID: "t9", Content: input.Content, URL: "https://todoist.com/t9"}, nil
}

func (t tasks) Close(_ context.Context, _ model.User, id string) error {
	return t.record("tasks.close " + id)
}

func (t tasks) Delete(_ context.Context, _ model.User, id string) error {
	return t.record("tasks.delete " + id)
}

type sections struct{ *fakeTodoist }

func (s sections) Fetch(_ context.Context, _ model.User, id string) ([]model.Section, error) {
	return s.sections, s.record("sections.fetch " + id)
}

func (s sections) Delete(_ context.Context, _ model.User, id string) error {
	return s.record("sections.delete " + id)
}

type labels struct{ *fakeTodoist }

func (l labels) Fetch(_ context.Context, _ model.User, id string) ([]model.Label, error) {
	return l.labels, l.record("labels.fetch " + id)
}

func (l labels) Create(_ context.Context, _ model.User, name string) (model.Label, error) {
	return model.Label{ID: "l9", Name: name}, l.record("labels.create " + name)
}

func (l labels) Delete(_ context.Context, _ model.User, id string) error {
	return l.record("labels.delete " + id)
}

type sharedLabels struct{ *fakeTodoist }

func (s sharedLabels) Rename(_ context.Context, _ model.User, name, newName string) error {
	s.renamed = [2]string{name, newName}
	return s.record("shared.rename " + name)
}

func (s sharedLabels) Delete(_ context.Context, _ model.User, name string) error {
	return s.record("shared.delete " + name)
}

type comments struct{ *fakeTodoist }

func (c comments) Fetch(_ context.Context, _ model.User, filter service.CommentFilter) ([]model.Comment, error) {
	c.commentFilter = filter
	return c.comments, c.record("comments.fetch")
}

func (c comments) Delete(_ context.Context, _ model.User, id string) error {
	return c.record("comments.delete " + id)
}

var fixedNow = time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC)

type harness struct {
	handler   *interaction.Handler
	messenger *mockMessenger
	todoist   *fakeTodoist
	directory *mockDirectory
}

func newHarness() *harness {
	f := &fakeTodoist{
		projects: []model.Project{{ID: "p1", Name: "Home", URL: "https://todoist.com/p1", Color: "red"}},
		tasks:    []model.Task{{ID: "t1", Content: "Buy milk", Priority: 4, URL: "https://todoist.com/t1"}},
		sections: []model.Section{{ID: "s1", Name: "Backlog", ProjectID: "p1"}},
		labels:   []model.Label{{ID: "l1", Name: "home", Color: "blue"}},
		comments: []model.Comment{{ID: "c1", Content: "nice", PostedAt: "2026-01-01T00:00:00Z"}},
	}
	m := &mockMessenger{}
	d := &mockDirectory{roomFn: func(id string) (model.Room, error) {
		return model.Room{ID: id}, nil
	}}
	h := interaction.NewHandler(interaction.Deps{
		Messenger:    m,
		Directory:    d,
		Projects:     projects{f},
		Tasks:        tasks{f},
		Sections:     sections{f},
		Labels:       labels{f},
		SharedLabels: sharedLabels{f},
		Comments:     comments{f},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:          func() time.Time { return fixedNow },
	})
	return &harness{handler: h, messenger: m, todoist: f, directory: d}
}

func room(id string) *model.Room {
	return &model.Room{ID: id}
}

var errUpstream = &service.UserError{Message: "Could not delete task: boom", Err: errors.New("status 500")}
