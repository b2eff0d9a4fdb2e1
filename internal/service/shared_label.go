package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

// SharedLabelService manages labels that collaborators attached to shared
// tasks. Upstream they are plain names without ids.
type SharedLabelService struct {
	resource
}

func NewSharedLabelService(api API, logger *slog.Logger) *SharedLabelService {
	return &SharedLabelService{resource{api: api, logger: logger, name: "shared label", plural: "shared labels"}}
}

func (s *SharedLabelService) Fetch(ctx context.Context, user model.User) ([]model.SharedLabel, error) {
	names, err := fetchAll(ctx, s.resource, user, s.api.Endpoints().SharedLabels(), false, validateSharedLabelName)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err)
	}

	labels := make([]model.SharedLabel, len(names))
	for i, name := range names {
		labels[i] = model.SharedLabel{Name: name}
	}
	return labels, nil
}

// Rename renames a shared label across all tasks. Todoist answers 204.
func (s *SharedLabelService) Rename(ctx context.Context, user model.User, name, newName string) error {
	if name == "" || newName == "" {
		return s.fail(ctx, opUpdate, fmt.Errorf("%w: current and new name are required", ErrInvalidInput))
	}

	body := map[string]string{"name": name, "new_name": newName}
	if _, err := s.call(ctx, user, http.MethodPost, s.api.Endpoints().SharedLabelsRename(),
		&todoist.Options{Body: body}, http.StatusNoContent); err != nil {
		return s.fail(ctx, opUpdate, err, "name", name)
	}
	return nil
}

// Delete removes a shared label from all tasks. Unlike the personal label
// DELETE, the remove endpoint answers 200 on success.
func (s *SharedLabelService) Delete(ctx context.Context, user model.User, name string) error {
	if name == "" {
		return s.fail(ctx, opDelete, fmt.Errorf("%w: shared label name is required", ErrInvalidInput))
	}

	body := map[string]string{"name": name}
	if _, err := s.call(ctx, user, http.MethodPost, s.api.Endpoints().SharedLabelsRemove(),
		&todoist.Options{Body: body}, http.StatusOK); err != nil {
		return s.fail(ctx, opDelete, err, "name", name)
	}
	return nil
}

func validateSharedLabelName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: shared label requires a name", ErrValidation)
	}
	return nil
}
