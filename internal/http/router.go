package http

import (
	"log/slog"
	"net/http"

	"github.com/jannatkhandev/App-Todoist/internal/host"
	"github.com/jannatkhandev/App-Todoist/internal/http/handler"
)

type Routes struct {
	DB         handler.Pinger
	Dispatcher handler.Dispatcher
	OAuth      handler.OAuthCompleter
	Messenger  host.Messenger
	Logger     *slog.Logger
}

func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler(routes.DB))

	// Slack request URLs; signatures are checked by middleware.
	mux.Handle("/slack/commands", handler.NewCommandHandler(routes.Dispatcher, routes.Logger))
	mux.Handle("/slack/interactions", handler.NewInteractionHandler(routes.Dispatcher, routes.Logger))
	mux.Handle("/slack/events", handler.NewEventHandler(routes.Dispatcher, routes.Logger))

	mux.Handle("/oauth/callback", handler.NewOAuthHandler(routes.OAuth, routes.Messenger, routes.Logger))

	return mux
}
