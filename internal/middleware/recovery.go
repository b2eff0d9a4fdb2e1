package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

type recoveryWriter struct {
	http.ResponseWriter
	headerWritten bool
}

func (rw *recoveryWriter) WriteHeader(code int) {
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recoveryWriter) Write(b []byte) (int, error) {
	rw.headerWritten = true
	return rw.ResponseWriter.Write(b)
}

func (rw *recoveryWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Recovery turns a panicking handler into a JSON 500. Slack retries
// unacknowledged deliveries, so the panic is logged with the request id
// and the retry number.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}

			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", recoveredRequestID(r, rw),
						"retry_num", r.Header.Get("X-Slack-Retry-Num"),
						"stack", string(debug.Stack()),
					)

					if rw.headerWritten {
						return
					}
					writeError(rw, logger, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// recoveredRequestID finds the id of a request that panicked. Logging runs
// inside Recovery and stores the id on a derived request, so the id is
// read back from the response header it echoes.
func recoveredRequestID(r *http.Request, w http.ResponseWriter) string {
	if id := GetRequestID(r); id != "" {
		return id
	}
	if id := w.Header().Get(RequestIDHeader); id != "" {
		return id
	}
	return r.Header.Get(RequestIDHeader)
}
