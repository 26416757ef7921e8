package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/stemspark-api/internal/models"
)

// TutoringSessionRepository reads tutoring sessions.
type TutoringSessionRepository struct {
	db *sqlx.DB
}

// NewTutoringSessionRepository constructs the repository.
func NewTutoringSessionRepository(db *sqlx.DB) *TutoringSessionRepository {
	return &TutoringSessionRepository{db: db}
}

// FindCompleted returns the session only when it belongs to the intern and is completed.
func (r *TutoringSessionRepository) FindCompleted(ctx context.Context, sessionID, internID string) (*models.TutoringSession, error) {
	const query = `SELECT id, intern_id, subject, status, scheduled_time, completed_at
	FROM tutoring_sessions
	WHERE id = $1 AND intern_id = $2 AND status = $3`
	var session models.TutoringSession
	if err := r.db.GetContext(ctx, &session, query, sessionID, internID, models.TutoringSessionCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find completed tutoring session: %w", err)
	}
	return &session, nil
}
