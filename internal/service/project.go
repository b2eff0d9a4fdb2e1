package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

type ProjectService struct {
	resource
}

func NewProjectService(api API, logger *slog.Logger) *ProjectService {
	return &ProjectService{resource{api: api, logger: logger, name: "project", plural: "projects"}}
}

// Fetch lists all projects, or the single project with id when id is set.
func (s *ProjectService) Fetch(ctx context.Context, user model.User, id string) ([]model.Project, error) {
	e := s.api.Endpoints()
	url, single := e.Projects(), false
	if id != "" {
		url, single = e.Project(id), true
	}

	projects, err := fetchAll(ctx, s.resource, user, url, single, validateProject)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err, "id", id)
	}
	return projects, nil
}

func (s *ProjectService) Collaborators(ctx context.Context, user model.User, projectID string) ([]model.Collaborator, error) {
	if projectID == "" {
		return nil, s.fail(ctx, opFetch, fmt.Errorf("%w: project id is required", ErrInvalidInput))
	}
	collaborators, err := fetchAll(ctx, s.resource, user, s.api.Endpoints().ProjectCollaborators(projectID), false, validateCollaborator)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err, "project_id", projectID)
	}
	return collaborators, nil
}

func validateProject(p model.Project) error {
	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("%w: project requires id and name", ErrValidation)
	}
	return nil
}

func validateCollaborator(c model.Collaborator) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("%w: collaborator requires id and name", ErrValidation)
	}
	return nil
}
