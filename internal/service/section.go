package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

type SectionService struct {
	resource
}

func NewSectionService(api API, logger *slog.Logger) *SectionService {
	return &SectionService{resource{api: api, logger: logger, name: "section", plural: "sections"}}
}

func (s *SectionService) Fetch(ctx context.Context, user model.User, id string) ([]model.Section, error) {
	e := s.api.Endpoints()
	url, single := e.Sections(), false
	if id != "" {
		url, single = e.Section(id), true
	}

	sections, err := fetchAll(ctx, s.resource, user, url, single, validateSection)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err, "id", id)
	}
	return sections, nil
}

func (s *SectionService) Delete(ctx context.Context, user model.User, id string) error {
	return s.deleteAt(ctx, user, s.api.Endpoints().Section(id), id)
}

func validateSection(sec model.Section) error {
	if sec.ID == "" || sec.Name == "" {
		return fmt.Errorf("%w: section requires id and name", ErrValidation)
	}
	return nil
}
