package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

const DefaultBaseURL = "https://api.todoist.com/rest/v2"

var (
	ErrNoToken           = errors.New("todoist account not authorized")
	ErrUnsupportedMethod = errors.New("unsupported http method")
)

// TokenSource resolves the stored Todoist access token of a chat user.
// Implementations return an error wrapping ErrNoToken when the user has
// not authorized yet.
type TokenSource interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

// Options are the per-call extras. Headers supplied here override the
// defaults, except Authorization which is always set from the token.
type Options struct {
	Headers map[string]string
	Query   url.Values
	Body    any
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode todoist response: %w", err)
	}
	return nil
}

// Message returns the upstream error text, if any.
func (r *Response) Message() string {
	return strings.TrimSpace(string(r.Body))
}

type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	baseURL    string
	requestID  func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

func NewClient(tokens TokenSource, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     logger,
		baseURL:    DefaultBaseURL,
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoints() Endpoints {
	return Endpoints{base: c.baseURL}
}

// Call performs one authenticated request on behalf of user. Any status
// code is returned to the caller; only transport failures produce an error.
func (c *Client) Call(ctx context.Context, user model.User, method, rawURL string, opts *Options) (*Response, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if opts == nil {
		opts = &Options{}
	}

	token, err := c.tokens.AccessToken(ctx, user.ID)
	if err != nil {
		c.logger.ErrorContext(ctx, "todoist token lookup failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid todoist url %q: %w", rawURL, err)
	}
	if len(opts.Query) > 0 {
		q := target.Query()
		for k, vs := range opts.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode todoist request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build todoist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost {
		req.Header.Set("X-Request-Id", c.requestID())
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.DebugContext(ctx, "todoist request", "method", method, "url", target.Redacted())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "todoist request failed", "method", method, "url", target.Redacted(), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "todoist response read failed", "method", method, "url", target.Redacted(), "error", err)
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) Get(ctx context.Context, user model.User, rawURL string, opts *Options) (*Response, error) {
	return c.Call(ctx, user, http.MethodGet, rawURL, opts)
}

func (c *Client) Post(ctx context.Context, user model.User, rawURL string, opts *Options) (*Response, error) {
	return c.Call(ctx, user, http.MethodPost, rawURL, opts)
}

func (c *Client) Put(ctx context.Context, user model.User, rawURL string, opts *Options) (*Response, error) {
	return c.Call(ctx, user, http.MethodPut, rawURL, opts)
}

func (c *Client) Delete(ctx context.Context, user model.User, rawURL string, opts *Options) (*Response, error) {
	return c.Call(ctx, user, http.MethodDelete, rawURL, opts)
}

func (c *Client) Patch(ctx context.Context, user model.User, rawURL string, opts *Options) (*Response, error) {
	return c.Call(ctx, user, http.MethodPatch, rawURL, opts)
}
