package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(ctx context.Context, userID string) (string, error) {
	return s.token, s.err
}

var testUser = model.User{ID: "U1", Name: "alice"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTodoist serves canned responses keyed by "METHOD /path".
type fakeTodoist struct {
	t        *testing.T
	routes   map[string]cannedResponse
	requests []*recordedRequest
}

type cannedResponse struct {
	status int
	body   string
}

type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
	header http.Header
}

func newFakeTodoist(t *testing.T, routes map[string]cannedResponse) (*fakeTodoist, *todoist.Client) {
	t.Helper()
	f := &fakeTodoist{t: t, routes: routes}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	client := todoist.NewClient(staticTokens{token: "tok"}, discardLogger(),
		todoist.WithBaseURL(srv.URL), todoist.WithHTTPClient(srv.Client()))
	return f, client
}

func (f *fakeTodoist) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, &recordedRequest{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   string(body),
		header: r.Header.Clone(),
	})

	resp, ok := f.routes[r.Method+" "+r.URL.Path]
	if !ok {
		f.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeTodoist) last() *recordedRequest {
	f.t.Helper()
	if len(f.requests) == 0 {
		f.t.Fatal("no request recorded")
	}
	return f.requests[len(f.requests)-1]
}

// noCallAPI fails the test when a request reaches Todoist.
type noCallAPI struct {
	t *testing.T
}

func (n *noCallAPI) Call(ctx context.Context, user model.User, method, rawURL string, opts *todoist.Options) (*todoist.Response, error) {
	n.t.Errorf("unexpected todoist call %s %s", method, rawURL)
	return nil, errors.New("unexpected call")
}

func (n *noCallAPI) Endpoints() todoist.Endpoints {
	return todoist.NewEndpoints("http://todoist.invalid")
}

func containsStr(s, sub string) bool {
	return strings.Contains(s, sub)
}
