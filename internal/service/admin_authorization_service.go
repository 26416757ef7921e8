package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
)

const (
	reasonProfileNotFound = "Profile not found"
	reasonAdminRequired   = "Admin access required"
	reasonMissingUser     = "User id is required"
)

type profileReader interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// AdminAuthorizationService decides whether a user may perform admin actions.
type AdminAuthorizationService struct {
	profiles profileReader
	logger   *zap.Logger
}

// NewAdminAuthorizationService constructs the service.
func NewAdminAuthorizationService(profiles profileReader, logger *zap.Logger) *AdminAuthorizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAuthorizationService{profiles: profiles, logger: logger}
}

// CheckAdmin loads the profile of userID and reports whether it holds the admin role or the
// super admin flag. A missing profile yields an unauthorized result together with ErrNotFound.
func (s *AdminAuthorizationService) CheckAdmin(ctx context.Context, userID string) (models.AdminCheckResult, error) {
	if strings.TrimSpace(userID) == "" {
		return models.AdminCheckResult{Reason: reasonMissingUser}, appErrors.Clone(appErrors.ErrUnauthorized, reasonMissingUser)
	}
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AdminCheckResult{Reason: reasonProfileNotFound}, appErrors.Clone(appErrors.ErrNotFound, reasonProfileNotFound)
		}
		s.logger.Error("admin check failed", zap.String("user_id", userID), zap.Error(err))
		return models.AdminCheckResult{}, appErrors.Dependency(err)
	}
	if !profile.IsAdmin() {
		return models.AdminCheckResult{Profile: profile, Reason: reasonAdminRequired}, nil
	}
	return models.AdminCheckResult{Authorized: true, Profile: profile}, nil
}
