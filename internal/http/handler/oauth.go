package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/oauth"
)

const authSucceededText = "The authentication process has succeeded! :tada:"

type OAuthCompleter interface {
	Complete(ctx context.Context, code, state string) (string, error)
}

// OAuthHandler is the Todoist redirect target. It stores the user's token
// and confirms in a direct message.
type OAuthHandler struct {
	oauth     OAuthCompleter
	messenger host.Messenger
	logger    *slog.Logger
}

func NewOAuthHandler(completer OAuthCompleter, messenger host.Messenger, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{oauth: completer, messenger: messenger, logger: logger}
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}

	q := r.URL.Query()
	if reason := q.Get("error"); reason != "" {
		h.logger.WarnContext(r.Context(), "authorization denied", "reason", reason)
		WriteError(w, http.StatusBadRequest, "ACCESS_DENIED", "authorization was not granted")
		return
	}
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "code and state are required")
		return
	}

	userID, err := h.oauth.Complete(r.Context(), code, state)
	if err != nil {
		if errors.Is(err, oauth.ErrInvalidState) {
			WriteError(w, http.StatusBadRequest, "INVALID_STATE", "authorization link is invalid or expired")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to complete authorization", "error", err)
		WriteError(w, http.StatusBadGateway, "AUTHORIZATION_FAILED", "could not complete authorization with Todoist")
		return
	}

	if err := h.messenger.DirectMessage(r.Context(), model.User{ID: userID}, host.Message{Text: authSucceededText}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to confirm authorization", "user_id", userID, "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "authorized",
		"message": "Todoist is connected. You can close this window and return to Slack.",
	})
}
