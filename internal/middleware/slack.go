package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/slack-go/slack"
)

// maxBodyBytes bounds the signed request body read into memory.
const maxBodyBytes = 1 << 20

type VerifyConfig struct {
	SigningSecret string
	// Disabled skips verification. Only allowed in local environments.
	Disabled bool
}

// VerifySlack checks the X-Slack-Signature of every request under /slack/
// and restores the body for the next handler. Other paths pass through.
func VerifySlack(cfg VerifyConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Disabled || !strings.HasPrefix(path.Clean(r.URL.Path), "/slack/") {
				next.ServeHTTP(w, r)
				return
			}

			sv, err := slack.NewSecretsVerifier(r.Header, cfg.SigningSecret)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected unsigned request", "path", r.URL.Path, "error", err)
				writeError(w, logger, http.StatusUnauthorized, "UNAUTHORIZED", "invalid request signature")
				return
			}

			body, err := io.ReadAll(io.TeeReader(http.MaxBytesReader(w, r.Body, maxBodyBytes), &sv))
			if err != nil {
				writeError(w, logger, http.StatusBadRequest, "INVALID_BODY", "failed to read request body")
				return
			}
			if err := sv.Ensure(); err != nil {
				logger.WarnContext(r.Context(), "rejected request with bad signature", "path", r.URL.Path, "error", err)
				writeError(w, logger, http.StatusUnauthorized, "UNAUTHORIZED", "invalid request signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
