package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

type TaskService struct {
	resource
}

func NewTaskService(api API, logger *slog.Logger) *TaskService {
	return &TaskService{resource{api: api, logger: logger, name: "task", plural: "tasks"}}
}

// Fetch lists active tasks, or the single task with id when id is set.
func (s *TaskService) Fetch(ctx context.Context, user model.User, id string) ([]model.Task, error) {
	e := s.api.Endpoints()
	url, single := e.Tasks(), false
	if id != "" {
		url, single = e.Task(id), true
	}

	tasks, err := fetchAll(ctx, s.resource, user, url, single, validateTask)
	if err != nil {
		return nil, s.fail(ctx, opFetch, err, "id", id)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, user model.User, input model.CreateTaskInput) (model.Task, error) {
	if input.Content == "" {
		return model.Task{}, s.fail(ctx, opCreate, fmt.Errorf("%w: task content is required", ErrInvalidInput))
	}
	if input.Priority != 0 && !input.Priority.IsValid() {
		return model.Task{}, s.fail(ctx, opCreate, fmt.Errorf("%w: invalid priority %d", ErrInvalidInput, input.Priority))
	}

	task, err := s.write(ctx, user, s.api.Endpoints().Tasks(), input)
	if err != nil {
		return model.Task{}, s.fail(ctx, opCreate, err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, user model.User, id string, input model.UpdateTaskInput) (model.Task, error) {
	if id == "" {
		return model.Task{}, s.fail(ctx, opUpdate, fmt.Errorf("%w: id is required", ErrInvalidInput))
	}
	if input.Content != nil && *input.Content == "" {
		return model.Task{}, s.fail(ctx, opUpdate, fmt.Errorf("%w: task content cannot be empty", ErrInvalidInput))
	}

	task, err := s.write(ctx, user, s.api.Endpoints().Task(id), input)
	if err != nil {
		return model.Task{}, s.fail(ctx, opUpdate, err, "id", id)
	}
	return task, nil
}

func (s *TaskService) Close(ctx context.Context, user model.User, id string) error {
	return s.transition(ctx, user, s.api.Endpoints().TaskClose(id), id)
}

func (s *TaskService) Reopen(ctx context.Context, user model.User, id string) error {
	return s.transition(ctx, user, s.api.Endpoints().TaskReopen(id), id)
}

func (s *TaskService) Delete(ctx context.Context, user model.User, id string) error {
	return s.deleteAt(ctx, user, s.api.Endpoints().Task(id), id)
}

func (s *TaskService) write(ctx context.Context, user model.User, url string, body any) (model.Task, error) {
	resp, err := s.call(ctx, user, http.MethodPost, url, &todoist.Options{Body: body}, http.StatusOK)
	if err != nil {
		return model.Task{}, err
	}
	var task model.Task
	if err := resp.Decode(&task); err != nil {
		return model.Task{}, err
	}
	if err := validateTask(task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *TaskService) transition(ctx context.Context, user model.User, url, id string) error {
	if id == "" {
		return s.fail(ctx, opUpdate, fmt.Errorf("%w: id is required", ErrInvalidInput))
	}
	if _, err := s.call(ctx, user, http.MethodPost, url, nil, http.StatusNoContent); err != nil {
		return s.fail(ctx, opUpdate, err, "id", id)
	}
	return nil
}

func validateTask(t model.Task) error {
	if t.ID == "" || t.Content == "" {
		return fmt.Errorf("%w: task requires id and content", ErrValidation)
	}
	return nil
}
