package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jannatkhandev/App-Todoist/internal/model"
)

type TokenRepository interface {
	Get(ctx context.Context, userID string) (model.OAuthToken, error)
	Save(ctx context.Context, token model.OAuthToken) error
	Delete(ctx context.Context, userID string) error
}

// SQLTokenRepository stores tokens in postgres or sqlite; the statements
// are valid for both.
type SQLTokenRepository struct {
	db *sql.DB
}

func NewSQLToken(db *sql.DB) *SQLTokenRepository {
	return &SQLTokenRepository{db: db}
}

func (r *SQLTokenRepository) Get(ctx context.Context, userID string) (model.OAuthToken, error) {
	query := `
		SELECT user_id, access_token, token_type, refresh_token, expiry_unix
		FROM oauth_tokens
		WHERE user_id = $1`

	row := r.db.QueryRowContext(ctx, query, userID)
	return scanToken(row)
}

func (r *SQLTokenRepository) Save(ctx context.Context, token model.OAuthToken) error {
	query := `
		INSERT INTO oauth_tokens (user_id, access_token, token_type, refresh_token, expiry_unix)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			token_type = EXCLUDED.token_type,
			refresh_token = EXCLUDED.refresh_token,
			expiry_unix = EXCLUDED.expiry_unix,
			updated_at = CURRENT_TIMESTAMP`

	var expiry sql.NullInt64
	if token.Expiry != nil && !token.Expiry.IsZero() {
		expiry = sql.NullInt64{Int64: token.Expiry.Unix(), Valid: true}
	}
	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	_, err := r.db.ExecContext(ctx, query,
		token.UserID, token.AccessToken, tokenType, token.RefreshToken, expiry,
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *SQLTokenRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return deleted(result)
}

func scanToken(row scannable) (model.OAuthToken, error) {
	var (
		t      model.OAuthToken
		expiry sql.NullInt64
	)
	if err := row.Scan(&t.UserID, &t.AccessToken, &t.TokenType, &t.RefreshToken, &expiry); err != nil {
		return model.OAuthToken{}, fmt.Errorf("failed to scan token: %w", err)
	}
	if expiry.Valid {
		at := time.Unix(expiry.Int64, 0).UTC()
		t.Expiry = &at
	}
	return t, nil
}

var _ TokenRepository = (*SQLTokenRepository)(nil)
