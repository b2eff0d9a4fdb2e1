package socket

import (
	"log/slog"

	"github.com/slack-go/slack/socketmode"
)

func NewTestRunner(client Client, events <-chan socketmode.Event, dispatcher Dispatcher, logger *slog.Logger) *Runner {
	return newRunner(client, events, dispatcher, logger)
}
