// Package oauth runs the Todoist authorization code flow and serves the
// stored access tokens.
package oauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/jannatkhandev/App-Todoist/internal/config"
	"github.com/jannatkhandev/App-Todoist/internal/model"
	"github.com/jannatkhandev/App-Todoist/internal/repository"
	"github.com/jannatkhandev/App-Todoist/internal/todoist"
)

const (
	Scope = "task:add,data:read,data:read_write,data:delete"

	stateIssuer = "todoist-app"
	stateTTL    = 10 * time.Minute
)

var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://todoist.com/oauth/authorize",
	TokenURL:  "https://todoist.com/oauth/access_token",
	AuthStyle: oauth2.AuthStyleInParams,
}

var ErrInvalidState = errors.New("invalid oauth state")

type Service struct {
	config *oauth2.Config
	tokens repository.TokenRepository
	secret []byte
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

func WithEndpoint(e oauth2.Endpoint) Option {
	return func(s *Service) { s.config.Endpoint = e }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(cfg config.TodoistConfig, tokens repository.TokenRepository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     Endpoint,
			Scopes:       []string{Scope},
		},
		tokens: tokens,
		secret: []byte(cfg.StateSecret),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthorizationURL returns the Todoist consent page for the user. The
// state parameter is a short-lived signed token naming the user.
func (s *Service) AuthorizationURL(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    stateIssuer,
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	return s.config.AuthCodeURL(state), nil
}

func (s *Service) userFromState(state string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidState)
	}
	return claims.Subject, nil
}

// Complete exchanges the authorization code and stores the token for the
// user named in state.
func (s *Service) Complete(ctx context.Context, code, state string) (string, error) {
	userID, err := s.userFromState(state)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", errors.New("authorization code is required")
	}

	tok, err := s.config.Exchange(ctx, code)
	if err != nil {
		s.logger.ErrorContext(ctx, "oauth code exchange failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	record := model.OAuthToken{
		UserID:       userID,
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		record.Expiry = &expiry
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "todoist account authorized", "user_id", userID)
	return userID, nil
}

// AccessToken implements todoist.TokenSource.
func (s *Service) AccessToken(ctx context.Context, userID string) (string, error) {
	tok, err := s.tokens.Get(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: user %s", todoist.ErrNoToken, userID)
	}
	if err != nil {
		return "", err
	}
	if tok.Expiry != nil && !tok.Expiry.After(s.now()) {
		return "", fmt.Errorf("%w: token of user %s expired", todoist.ErrNoToken, userID)
	}
	return tok.AccessToken, nil
}

var _ todoist.TokenSource = (*Service)(nil)
