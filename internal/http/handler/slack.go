package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/jannatkhandev/App-Todoist/internal/interaction"
)

type Dispatcher interface {
	Command(ctx context.Context, cmd slack.SlashCommand) error
	Interaction(ctx context.Context, cb slack.InteractionCallback) interaction.Response
	Event(ctx context.Context, event slackevents.EventsAPIEvent) error
}

// CommandHandler serves the /todoist slash command.
type CommandHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewCommandHandler(d Dispatcher, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{dispatcher: d, logger: logger}
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid slash command payload")
		return
	}

	// Replies go out through the Web API; the HTTP response only acknowledges.
	if err := h.dispatcher.Command(r.Context(), cmd); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to reply to slash command",
			"user_id", cmd.UserID, "channel_id", cmd.ChannelID, "text", cmd.Text, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}

// InteractionHandler serves button clicks, modal submissions and message
// shortcuts, all posted as a form field named payload.
type InteractionHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewInteractionHandler(d Dispatcher, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{dispatcher: d, logger: logger}
}

func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	payload := r.FormValue("payload")
	if payload == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "payload is required")
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid interaction payload")
		return
	}

	resp := h.dispatcher.Interaction(r.Context(), cb)
	if !resp.OK {
		h.logger.WarnContext(r.Context(), "interaction failed", "type", cb.Type, "user_id", cb.User.ID, "error", resp.Err)
	}
	WriteAck(w, resp)
}

// EventHandler serves the Events API endpoint, including the one-time
// URL verification handshake.
type EventHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(d Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{dispatcher: d, logger: logger}
}

func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_BODY", "failed to read request body")
		return
	}

	// Requests are authenticated by signature, not the legacy token.
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid event payload")
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid challenge")
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge.Challenge))
		return
	}

	if err := h.dispatcher.Event(r.Context(), event); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to handle event", "type", event.InnerEvent.Type, "error", err)
	}
	w.WriteHeader(http.StatusOK)
}
