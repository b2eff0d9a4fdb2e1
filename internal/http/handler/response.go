package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/dispatch"
	"github.com/jannatkhandev/App-Todoist/internal/interaction"
	"github.com/jannatkhandev/App-Todoist/internal/service"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// WriteAck acknowledges an interaction. Success is an empty 200; input
// errors keep the modal open with messages under the offending fields;
// any other failure is a 400.
func WriteAck(w http.ResponseWriter, resp interaction.Response) {
	if resp.OK {
		w.WriteHeader(http.StatusOK)
		return
	}
	if ack := dispatch.ViewAck(resp); ack != nil {
		WriteJSON(w, http.StatusOK, ack)
		return
	}

	switch {
	case errors.Is(resp.Err, interaction.ErrUnknownAction), errors.Is(resp.Err, interaction.ErrUnknownView):
		WriteError(w, http.StatusBadRequest, "UNKNOWN_INTERACTION", resp.Err.Error())
	case errors.Is(resp.Err, interaction.ErrMissingRoom),
		errors.Is(resp.Err, interaction.ErrMissingValue),
		errors.Is(resp.Err, interaction.ErrMissingTrigger),
		errors.Is(resp.Err, dispatch.ErrNoAction):
		WriteError(w, http.StatusBadRequest, "INVALID_INTERACTION", resp.Err.Error())
	default:
		WriteError(w, http.StatusBadRequest, "INTERACTION_FAILED", service.Message(resp.Err))
	}
}
