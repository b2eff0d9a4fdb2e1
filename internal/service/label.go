package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

type LabelService struct {
	resource
}

func NewLabelService(api API, logger *slog.Logger) *LabelService {
	return &LabelService{resource{api: api, logger: logger, name: "label", plural: "labels"}}
}

func (s *LabelService) Fetch(ctx context.Context, user model.User, id string) ([]model.Label, error) {
	e := s.api.Endpoints()
	url, single := e.Labels(), false
	if id != "" {
		url, single = e.Label(id), true
	}

	labels, err := fetchAll(ctx, s.resource, user, url, single, validateLabel)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err, "id", id)
	}
	return labels, nil
}

// Create adds a personal label with the given name.
func (s *LabelService) Create(ctx context.Context, user model.User, name string) (model.Label, error) {
	if name == "" {
		return model.Label{}, s.fail(ctx, opCreate, fmt.Errorf("%w: label name is required", ErrInvalidInput))
	}

	resp, err := s.call(ctx, user, http.MethodPost, s.api.Endpoints().Labels(),
		&todoist.Options{Body: map[string]string{"name": name}}, http.StatusOK)
	if err != nil {
		return model.Label{}, s.fail(ctx, opCreate, err, "name", name)
	}

	var label model.Label
	if err := resp.Decode(&label); err != nil {
		return model.Label{}, s.fail(ctx, opCreate, err, "name", name)
	}
	if err := validateLabel(label); err != nil {
		return model.Label{}, s.fail(ctx, opCreate, err, "name", name)
	}
	return label, nil
}

// Delete removes a personal label. Todoist answers 204 on success.
func (s *LabelService) Delete(ctx context.Context, user model.User, id string) error {
	return s.deleteAt(ctx, user, s.api.Endpoints().Label(id), id)
}

func validateLabel(l model.Label) error {
	if l.ID == "" || l.Name == "" || l.Color == "" {
		return fmt.Errorf("%w: label requires id, name and color", ErrValidation)
	}
	return nil
}
