package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jannatkhandev/App-Todoist/internal/http/handler"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
	"github.com/jannatkhandev/App-Todoist/internal/service"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"status": "ok"}

	handler.WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	handler.WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "name is required")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var result handler.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Error.Code != "INVALID_INPUT" {
		t.Errorf("expected code=INVALID_INPUT, got %s", result.Error.Code)
	}
	if result.Error.Message != "name is required" {
		t.Errorf("expected message='name is required', got %s", result.Error.Message)
	}
}

func TestWriteAck(t *testing.T) {
	tests := []struct {
		name       string
		resp       interaction.Response
		wantStatus int
		wantCode   string
		wantAction string
	}{
		{"success", interaction.Response{OK: true}, http.StatusOK, "", ""},
		{
			name:       "field errors",
			resp:       interaction.Response{Err: service.ErrInvalidInput, Errors: map[string]string{"task_name": "A task name is required."}},
			wantStatus: http.StatusOK,
			wantAction: "errors",
		},
		{"unknown action", interaction.Response{Err: fmt.Errorf("%w: drop_tables", interaction.ErrUnknownAction)}, http.StatusBadRequest, "UNKNOWN_INTERACTION", ""},
		{"missing room", interaction.Response{Err: interaction.ErrMissingRoom}, http.StatusBadRequest, "INVALID_INTERACTION", ""},
		{"upstream", interaction.Response{Err: &service.UserError{Message: "Could not delete task", Err: errors.New("500")}}, http.StatusBadRequest, "INTERACTION_FAILED", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.WriteAck(w, tt.resp)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			switch {
			case tt.wantCode != "":
				var result handler.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.Error.Code != tt.wantCode {
					t.Errorf("expected code=%s, got %s", tt.wantCode, result.Error.Code)
				}
			case tt.wantAction != "":
				var result struct {
					ResponseAction string            `json:"response_action"`
					Errors         map[string]string `json:"errors"`
				}
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if result.ResponseAction != tt.wantAction || result.Errors["task_name"] == "" {
					t.Errorf("unexpected ack %+v", result)
				}
			default:
				if w.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", w.Body.String())
				}
			}
		})
	}
}
