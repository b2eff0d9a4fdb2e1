package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// NotificationNamespace scopes notification preferences of this app.
const NotificationNamespace = "todoist-notifications"

// NotificationRepository keeps the per-user direct message preference.
// Get returns an error wrapping sql.ErrNoRows when the user has no record.
type NotificationRepository interface {
	Get(ctx context.Context, userID string) (bool, error)
	Set(ctx context.Context, userID string, enabled bool) error
	Delete(ctx context.Context, userID string) error
}

type SQLNotificationRepository struct {
	db        *sql.DB
	namespace string
}

func NewSQLNotification(db *sql.DB) *SQLNotificationRepository {
	return &SQLNotificationRepository{db: db, namespace: NotificationNamespace}
}

func (r *SQLNotificationRepository) Get(ctx context.Context, userID string) (bool, error) {
	query := `
		SELECT enabled
		FROM notification_settings
		WHERE namespace = $1 AND user_id = $2`

	var enabled bool
	if err := r.db.QueryRowContext(ctx, query, r.namespace, userID).Scan(&enabled); err != nil {
		return false, fmt.Errorf("failed to get notification setting: %w", err)
	}
	return enabled, nil
}

func (r *SQLNotificationRepository) Set(ctx context.Context, userID string, enabled bool) error {
	query := `
		INSERT INTO notification_settings (namespace, user_id, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (namespace, user_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, r.namespace, userID, enabled); err != nil {
		return fmt.Errorf("failed to set notification setting: %w", err)
	}
	return nil
}

func (r *SQLNotificationRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM notification_settings WHERE namespace = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, r.namespace, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification setting: %w", err)
	}
	return deleted(result)
}

var _ NotificationRepository = (*SQLNotificationRepository)(nil)
