// Package notify sends direct messages that respect the user's
// notification preference.
package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/repository"
)

const (
	welcomeText = "Welcome to the Todoist Slack App!\n" +
		"To start managing your projects, tasks, etc. " +
		"You first need to complete the app's setup and then authorize your Todoist account.\n" +
		"To do so, type `/todoist auth`\n"
	quickReminder = "Quick reminder: Let your team members know about the Todoist App, " +
		"so everyone will be able to manage their tasks.\n"
)

// Notifier delivers direct messages. Users without a stored preference
// receive them.
type Notifier struct {
	messenger host.Messenger
	prefs     repository.NotificationRepository
	logger    *slog.Logger
}

func NewNotifier(messenger host.Messenger, prefs repository.NotificationRepository, logger *slog.Logger) *Notifier {
	return &Notifier{messenger: messenger, prefs: prefs, logger: logger}
}

// Enabled reports the user's preference, defaulting to true.
func (n *Notifier) Enabled(ctx context.Context, userID string) (bool, error) {
	enabled, err := n.prefs.Get(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return enabled, nil
}

func (n *Notifier) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	return n.prefs.Set(ctx, userID, enabled)
}

// DirectMessage sends msg to the user unless they turned notifications
// off. It reports whether the message was sent.
func (n *Notifier) DirectMessage(ctx context.Context, user model.User, msg host.Message) (bool, error) {
	enabled, err := n.Enabled(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read notification setting: %w", err)
	}
	if !enabled {
		n.logger.DebugContext(ctx, "direct message suppressed", "user_id", user.ID)
		return false, nil
	}
	if err := n.messenger.DirectMessage(ctx, user, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Welcome greets a user the first time they open the app. A stored
// preference marks the user as already greeted.
func (n *Notifier) Welcome(ctx context.Context, user model.User) error {
	_, err := n.prefs.Get(ctx, user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read notification setting: %w", err)
	}

	text := welcomeText
	if user.IsHighHierarchy() {
		text += quickReminder
	}
	if err := n.messenger.DirectMessage(ctx, user, host.Message{Text: text}); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "welcome message sent", "user_id", user.ID)
	return n.prefs.Set(ctx, user.ID, true)
}
