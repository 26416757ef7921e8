package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/stemspark-api/internal/models"
)

const profileColumns = `id, email, full_name, role, is_super_admin, total_volunteer_hours, created_at, updated_at`

// ProfileRepository reads platform profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID returns a profile by identifier.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 LIMIT 1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find profile by id: %w", err)
	}
	return &profile, nil
}

// ListAdmins returns every profile holding the admin role.
func (r *ProfileRepository) ListAdmins(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY full_name`
	admins := make([]models.Profile, 0)
	if err := r.db.SelectContext(ctx, &admins, query, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("list admin profiles: %w", err)
	}
	return admins, nil
}
