package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/service"
)

func TestTaskService_Create(t *testing.T) {
	fake, api := newFakeTodoist(t, map[string]cannedResponse{
		"POST /tasks": {http.StatusOK, `{"id":"t9","content":"Buy milk","url":"https://todoist.com/showTask?id=t9"}`},
	})
	svc := service.NewTaskService(api, discardLogger())

	got, err := svc.Create(context.Background(), testUser, model.CreateTaskInput{
		Content:  "Buy milk",
		DueDate:  "2025-01-02",
		Priority: model.PriorityNormal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "t9" || got.URL == "" {
		t.Errorf("unexpected task %+v", got)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(fake.last().body), &body); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if body["content"] != "Buy milk" || body["due_date"] != "2025-01-02" || body["priority"] != float64(2) {
		t.Errorf("unexpected body %v", body)
	}
	if _, ok := body["project_id"]; ok {
		t.Errorf("expected project_id to be omitted, got %v", body)
	}
	if fake.last().header.Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id on create")
	}
}

func TestTaskService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input model.CreateTaskInput
	}{
		{"empty content", model.CreateTaskInput{}},
		{"bad priority", model.CreateTaskInput{Content: "x", Priority: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewTaskService(&noCallAPI{t: t}, discardLogger())
			_, err := svc.Create(context.Background(), testUser, tt.input)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if err.Error() != "Could not create task. Please try again later." {
				t.Errorf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	fake, api := newFakeTodoist(t, map[string]cannedResponse{
		"POST /tasks/t1": {http.StatusOK, `{"id":"t1","content":"Renamed"}`},
	})
	svc := service.NewTaskService(api, discardLogger())

	content := "Renamed"
	got, err := svc.Update(context.Background(), testUser, "t1", model.UpdateTaskInput{Content: &content})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != "Renamed" {
		t.Errorf("expected updated content, got %q", got.Content)
	}
	if fake.last().body != `{"content":"Renamed"}` {
		t.Errorf("unexpected body %s", fake.last().body)
	}
}

func TestTaskService_CloseReopen(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
		call    func(*service.TaskService) error
		path    string
	}{
		{"close ok", http.StatusNoContent, false, func(s *service.TaskService) error { return s.Close(context.Background(), testUser, "t1") }, "/tasks/t1/close"},
		{"close fails on 200", http.StatusOK, true, func(s *service.TaskService) error { return s.Close(context.Background(), testUser, "t1") }, "/tasks/t1/close"},
		{"reopen ok", http.StatusNoContent, false, func(s *service.TaskService) error { return s.Reopen(context.Background(), testUser, "t1") }, "/tasks/t1/reopen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := newFakeTodoist(t, map[string]cannedResponse{
				"POST " + tt.path: {tt.status, ""},
			})
			err := tt.call(service.NewTaskService(api, discardLogger()))
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDelete_Statuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"no content succeeds", http.StatusNoContent, "", ""},
		{"ok is not success", http.StatusOK, "", "Could not delete task. Please try again later."},
		{"upstream body surfaces", http.StatusBadRequest, "Task not found", "Could not delete task: Task not found"},
		{"empty body is generic", http.StatusInternalServerError, "", "Could not delete task. Please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := newFakeTodoist(t, map[string]cannedResponse{
				"DELETE /tasks/t1": {tt.status, tt.body},
			})
			err := service.NewTaskService(api, discardLogger()).Delete(context.Background(), testUser, "t1")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDelete_OtherResources(t *testing.T) {
	tests := []struct {
		name string
		path string
		del  func(api service.API) error
	}{
		{"section", "/sections/s1", func(api service.API) error {
			return service.NewSectionService(api, discardLogger()).Delete(context.Background(), testUser, "s1")
		}},
		{"label", "/labels/l1", func(api service.API) error {
			return service.NewLabelService(api, discardLogger()).Delete(context.Background(), testUser, "l1")
		}},
		{"comment", "/comments/c1", func(api service.API) error {
			return service.NewCommentService(api, discardLogger()).Delete(context.Background(), testUser, "c1")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := newFakeTodoist(t, map[string]cannedResponse{
				"DELETE " + tt.path: {http.StatusNoContent, ""},
			})
			if err := tt.del(api); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDelete_EmptyID(t *testing.T) {
	err := service.NewSectionService(&noCallAPI{t: t}, discardLogger()).Delete(context.Background(), testUser, "")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// Shared label removal answers 200, personal label DELETE answers 204.
// Each endpoint is judged by its own success status.
func TestLabelDelete_SharedVersusPersonal(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent} {
		_, api := newFakeTodoist(t, map[string]cannedResponse{
			"DELETE /labels/l1":          {status, ""},
			"POST /labels/shared/remove": {status, ""},
		})

		personalErr := service.NewLabelService(api, discardLogger()).Delete(context.Background(), testUser, "l1")
		sharedErr := service.NewSharedLabelService(api, discardLogger()).Delete(context.Background(), testUser, "team")

		switch status {
		case http.StatusOK:
			if personalErr == nil {
				t.Error("personal delete must fail on 200")
			}
			if sharedErr != nil {
				t.Errorf("shared delete must succeed on 200, got %v", sharedErr)
			}
		case http.StatusNoContent:
			if personalErr != nil {
				t.Errorf("personal delete must succeed on 204, got %v", personalErr)
			}
			if sharedErr == nil {
				t.Error("shared delete must fail on 204")
			}
		}
	}
}

func TestSharedLabelService_Fetch(t *testing.T) {
	fake, api := newFakeTodoist(t, map[string]cannedResponse{
		"GET /labels/shared": {http.StatusOK, `["team","urgent"]`},
	})

	got, err := service.NewSharedLabelService(api, discardLogger()).Fetch(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "team" || got[1].Name != "urgent" {
		t.Errorf("unexpected labels %+v", got)
	}
	if fake.last().query != "omit_personal=true" {
		t.Errorf("expected omit_personal query, got %q", fake.last().query)
	}
}

func TestSharedLabelService_FetchRejectsEmptyName(t *testing.T) {
	_, api := newFakeTodoist(t, map[string]cannedResponse{
		"GET /labels/shared": {http.StatusOK, `["team",""]`},
	})
	_, err := service.NewSharedLabelService(api, discardLogger()).Fetch(context.Background(), testUser)
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSharedLabelService_Rename(t *testing.T) {
	fake, api := newFakeTodoist(t, map[string]cannedResponse{
		"POST /labels/shared/rename": {http.StatusNoContent, ""},
	})
	svc := service.NewSharedLabelService(api, discardLogger())

	if err := svc.Rename(context.Background(), testUser, "team", "squad"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]string
	_ = json.Unmarshal([]byte(fake.last().body), &body)
	if body["name"] != "team" || body["new_name"] != "squad" {
		t.Errorf("unexpected body %v", body)
	}

	if err := svc.Rename(context.Background(), testUser, "team", ""); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty new name, got %v", err)
	}
}

func TestLabelService_Create(t *testing.T) {
	_, api := newFakeTodoist(t, map[string]cannedResponse{
		"POST /labels": {http.StatusOK, `{"id":"l5","name":"team","color":"charcoal"}`},
	})
	got, err := service.NewLabelService(api, discardLogger()).Create(context.Background(), testUser, "team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "l5" {
		t.Errorf("unexpected label %+v", got)
	}
}

func TestCommentService_FilterQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    service.CommentFilter
		wantQuery string
		body      string
	}{
		{"by task", service.CommentFilter{TaskID: "t1"}, "task_id=t1", `[{"id":"c1","content":"a","task_id":"t1"}]`},
		{"by project", service.CommentFilter{ProjectID: "p1"}, "project_id=p1", `[{"id":"c1","content":"a","project_id":"p1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, api := newFakeTodoist(t, map[string]cannedResponse{
				"GET /comments": {http.StatusOK, tt.body},
			})
			if _, err := service.NewCommentService(api, discardLogger()).Fetch(context.Background(), testUser, tt.filter); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fake.last().query != tt.wantQuery {
				t.Errorf("expected query %q, got %q", tt.wantQuery, fake.last().query)
			}
		})
	}
}

func TestCommentService_InvalidFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter service.CommentFilter
	}{
		{"none", service.CommentFilter{}},
		{"task and project", service.CommentFilter{TaskID: "t1", ProjectID: "p1"}},
		{"comment and task", service.CommentFilter{CommentID: "c1", TaskID: "t1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewCommentService(&noCallAPI{t: t}, discardLogger())
			_, err := svc.Fetch(context.Background(), testUser, tt.filter)
			if !errors.Is(err, service.ErrInvalidFilter) {
				t.Fatalf("expected ErrInvalidFilter, got %v", err)
			}
		})
	}
}

func TestCommentService_Create(t *testing.T) {
	_, api := newFakeTodoist(t, map[string]cannedResponse{
		"POST /comments": {http.StatusOK, `{"id":"c7","content":"note","task_id":"t1"}`},
	})
	svc := service.NewCommentService(api, discardLogger())

	got, err := svc.Create(context.Background(), testUser, model.CreateCommentInput{TaskID: "t1", Content: "note"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "c7" {
		t.Errorf("unexpected comment %+v", got)
	}

	_, err = svc.Create(context.Background(), testUser, model.CreateCommentInput{Content: "orphan"})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput without parent, got %v", err)
	}
}

func TestProjectService_Collaborators(t *testing.T) {
	_, api := newFakeTodoist(t, map[string]cannedResponse{
		"GET /projects/p1/collaborators": {http.StatusOK, `[{"id":"1","name":"Ann","email":"ann@example.com"}]`},
	})
	got, err := service.NewProjectService(api, discardLogger()).Collaborators(context.Background(), testUser, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Errorf("unexpected collaborators %+v", got)
	}
}
