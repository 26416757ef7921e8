package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/stemspark-api/internal/models"
)

// AdminActionRepository persists the admin actions log.
type AdminActionRepository struct {
	db *sqlx.DB
}

// NewAdminActionRepository constructs the repository.
func NewAdminActionRepository(db *sqlx.DB) *AdminActionRepository {
	return &AdminActionRepository{db: db}
}

// Create inserts an action log row.
func (r *AdminActionRepository) Create(ctx context.Context, action *models.AdminAction) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}
	if len(action.Metadata) == 0 {
		action.Metadata = []byte("{}")
	}
	const query = `INSERT INTO admin_actions_log
	(id, action_type, performed_by, target_user_id, resource_id, metadata, is_allowed, reason, created_at)
	VALUES (:id, :action_type, :performed_by, :target_user_id, :resource_id, :metadata, :is_allowed, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, action); err != nil {
		return fmt.Errorf("create admin action: %w", err)
	}
	return nil
}

// List returns the most recent actions first.
func (r *AdminActionRepository) List(ctx context.Context, limit int) ([]models.AdminAction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `SELECT id, action_type, performed_by, target_user_id, resource_id, metadata, is_allowed, reason, created_at
	FROM admin_actions_log ORDER BY created_at DESC LIMIT $1`
	actions := make([]models.AdminAction, 0)
	if err := r.db.SelectContext(ctx, &actions, query, limit); err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}
	return actions, nil
}
