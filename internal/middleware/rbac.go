package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/response"
)

type adminChecker interface {
	CheckAdmin(ctx context.Context, userID string) (models.AdminCheckResult, error)
}

// RequireAdmin gates a route group on the profile's admin role or super admin flag.
// Token roles are ignored: the profile row is the source of truth.
func RequireAdmin(checker adminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		result, err := checker.CheckAdmin(c.Request.Context(), claims.UserID())
		if err != nil && !errors.Is(err, appErrors.ErrNotFound) {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !result.Authorized {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, result.Reason))
			c.Abort()
			return
		}

		c.Next()
	}
}
