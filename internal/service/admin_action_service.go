package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/logger"
)

type adminActionLister interface {
	List(ctx context.Context, limit int) ([]models.AdminAction, error)
}

// AdminActionService exposes the admin actions log.
type AdminActionService struct {
	repo   adminActionLister
	logger *zap.Logger
}

// NewAdminActionService constructs the service.
func NewAdminActionService(repo adminActionLister, logger *zap.Logger) *AdminActionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminActionService{repo: repo, logger: logger}
}

// List returns the most recent admin actions.
func (s *AdminActionService) List(ctx context.Context, limit int) ([]models.AdminAction, error) {
	actions, err := s.repo.List(ctx, limit)
	if err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to list admin actions", zap.Error(err))
		return nil, appErrors.Dependency(err)
	}
	return actions, nil
}
