package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/middleware"
	"github.com/noah-isme/stemspark-api/internal/models"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID writes a 401 and returns false when the request carries no identity.
func currentUserID(c *gin.Context) (string, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID() == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID(), true
}

func reviewMetadata(c *gin.Context, note string) dto.ReviewMetadata {
	return dto.ReviewMetadata{
		Note:      note,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
