package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

// API is the subset of the Todoist client used by the services.
type API interface {
	Call(ctx context.Context, user model.User, method, rawURL string, opts *todoist.Options) (*todoist.Response, error)
	Endpoints() todoist.Endpoints
}

var _ API = (*todoist.Client)(nil)

type operation string

const (
	opFetch  operation = "retrieve"
	opCreate operation = "create"
	opUpdate operation = "update"
	opDelete operation = "delete"
)

type resource struct {
	api    API
	logger *slog.Logger
	name   string // singular, used in messages
	plural string
}

// fail logs the original error and returns the chat-safe wrapper.
func (r resource) fail(ctx context.Context, op operation, err error, attrs ...any) error {
	args := append([]any{"resource", r.name, "op", string(op), "error", err}, attrs...)
	r.logger.ErrorContext(ctx, "todoist operation failed", args...)

	if errors.Is(err, todoist.ErrNoToken) {
		return &UserError{
			Message: "Your Todoist account is not connected yet. Type `/todoist auth` to authorize it.",
			Err:     err,
		}
	}

	subject := r.name
	if op == opFetch {
		subject = r.plural
	}

	var se *StatusError
	if op == opDelete && errors.As(err, &se) && se.Body != "" {
		return &UserError{Message: fmt.Sprintf("Could not delete %s: %s", r.name, se.Body), Err: err}
	}
	return &UserError{
		Message: fmt.Sprintf("Could not %s %s. Please try again later.", op, subject),
		Err:     err,
	}
}

// call performs a request and checks the status against want.
func (r resource) call(ctx context.Context, user model.User, method, rawURL string, opts *todoist.Options, want int) (*todoist.Response, error) {
	resp, err := r.api.Call(ctx, user, method, rawURL, opts)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != want {
		return nil, &StatusError{Code: resp.StatusCode, Body: resp.Message()}
	}
	return resp, nil
}

// fetchAll requests rawURL and returns the validated records. When single
// is set the response is one object and is wrapped in a one-element slice.
func fetchAll[T any](ctx context.Context, r resource, user model.User, rawURL string, single bool, validate func(T) error) ([]T, error) {
	resp, err := r.call(ctx, user, http.MethodGet, rawURL, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var items []T
	if single {
		var item T
		if err := resp.Decode(&item); err != nil {
			return nil, err
		}
		items = []T{item}
	} else {
		if err := resp.Decode(&items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
	}

	for i, item := range items {
		if err := validate(item); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return items, nil
}

// deleteAt issues a DELETE and expects 204.
func (r resource) deleteAt(ctx context.Context, user model.User, rawURL, id string) error {
	if id == "" {
		return r.fail(ctx, opDelete, fmt.Errorf("%w: id is required", ErrInvalidInput))
	}
	if _, err := r.call(ctx, user, http.MethodDelete, rawURL, nil, http.StatusNoContent); err != nil {
		return r.fail(ctx, opDelete, err, "id", id)
	}
	return nil
}
