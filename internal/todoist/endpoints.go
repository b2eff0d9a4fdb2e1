package todoist

import "net/url"

// Endpoints builds Todoist REST v2 resource URLs.
type Endpoints struct {
	base string
}

func NewEndpoints(base string) Endpoints {
	return Endpoints{base: base}
}

func (e Endpoints) path(parts ...string) string {
	s := e.base
	for _, p := range parts {
		s += "/" + url.PathEscape(p)
	}
	return s
}

func (e Endpoints) Projects() string { return e.base + "/projects" }

func (e Endpoints) Project(id string) string { return e.path("projects", id) }

func (e Endpoints) ProjectCollaborators(id string) string {
	return e.path("projects", id, "collaborators")
}

func (e Endpoints) Sections() string { return e.base + "/sections" }

func (e Endpoints) Section(id string) string { return e.path("sections", id) }

func (e Endpoints) Tasks() string { return e.base + "/tasks" }

func (e Endpoints) Task(id string) string { return e.path("tasks", id) }

func (e Endpoints) TaskClose(id string) string { return e.path("tasks", id, "close") }

func (e Endpoints) TaskReopen(id string) string { return e.path("tasks", id, "reopen") }

func (e Endpoints) Comments() string { return e.base + "/comments" }

func (e Endpoints) Comment(id string) string { return e.path("comments", id) }

func (e Endpoints) Labels() string { return e.base + "/labels" }

func (e Endpoints) Label(id string) string { return e.path("labels", id) }

// SharedLabels lists shared label names only.
func (e Endpoints) SharedLabels() string { return e.base + "/labels/shared?omit_personal=true" }

func (e Endpoints) SharedLabelsRename() string { return e.base + "/labels/shared/rename" }

func (e Endpoints) SharedLabelsRemove() string { return e.base + "/labels/shared/remove" }
