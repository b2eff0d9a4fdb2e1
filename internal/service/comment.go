package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

// CommentFilter selects comments. Exactly one field must be set.
type CommentFilter struct {
	CommentID string
	TaskID    string
	ProjectID string
}

func (f CommentFilter) valid() bool {
	n := 0
	for _, v := range []string{f.CommentID, f.TaskID, f.ProjectID} {
		if v != "" {
			n++
		}
	}
	return n == 1
}

type CommentService struct {
	resource
}

func NewCommentService(api API, logger *slog.Logger) *CommentService {
	return &CommentService{resource{api: api, logger: logger, name: "comment", plural: "comments"}}
}

func (s *CommentService) Fetch(ctx context.Context, user model.User, filter CommentFilter) ([]model.Comment, error) {
	if !filter.valid() {
		return nil, s.fail(ctx, opFetch, ErrInvalidFilter)
	}

	e := s.api.Endpoints()
	var (
		target string
		single bool
	)
	switch {
	case filter.CommentID != "":
		target, single = e.Comment(filter.CommentID), true
	case filter.TaskID != "":
		target = e.Comments() + "?" + url.Values{"task_id": {filter.TaskID}}.Encode()
	default:
		target = e.Comments() + "?" + url.Values{"project_id": {filter.ProjectID}}.Encode()
	}

	comments, err := fetchAll(ctx, s.resource, user, target, single, validateComment)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err,
			"comment_id", filter.CommentID, "task_id", filter.TaskID, "project_id", filter.ProjectID)
	}
	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, user model.User, input model.CreateCommentInput) (model.Comment, error) {
	if input.Content == "" {
		return model.Comment{}, s.fail(ctx, opCreate, fmt.Errorf("%w: comment content is required", ErrInvalidInput))
	}
	if (input.TaskID == "") == (input.ProjectID == "") {
		return model.Comment{}, s.fail(ctx, opCreate, fmt.Errorf("%w: exactly one of task id or project id is required", ErrInvalidInput))
	}

	resp, err := s.call(ctx, user, http.MethodPost, s.api.Endpoints().Comments(), &todoist.Options{Body: input}, http.StatusOK)
	if err != nil {
		return model.Comment{}, s.fail(ctx, opCreate, err)
	}
	var comment model.Comment
	if err := resp.Decode(&comment); err != nil {
		return model.Comment{}, s.fail(ctx, opCreate, err)
	}
	if err := validateComment(comment); err != nil {
		return model.Comment{}, s.fail(ctx, opCreate, err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, user model.User, id string) error {
	return s.deleteAt(ctx, user, s.api.Endpoints().Comment(id), id)
}

func validateComment(c model.Comment) error {
	if c.ID == "" || c.Content == "" {
		return fmt.Errorf("%w: comment requires id and content", ErrValidation)
	}
	if (c.TaskID == "") == (c.ProjectID == "") {
		return fmt.Errorf("%w: comment must belong to exactly one task or project", ErrValidation)
	}
	return nil
}
