package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/stemspark-api/internal/service"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/ratelimit"
	"github.com/noah-isme/stemspark-api/pkg/response"
)

// Rate limit response headers.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
)

type limiter interface {
	Allow(ctx context.Context, identifier, bucket string) (ratelimit.Decision, error)
}

// RateLimit applies the named bucket per authenticated user, or per client IP before
// authentication. A nil limiter disables the check.
func RateLimit(l limiter, bucket string, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		identifier := "ip:" + c.ClientIP()
		if claims, ok := Claims(c); ok {
			identifier = "user:" + claims.UserID()
		}

		// Store errors already fail open inside the limiter.
		decision, _ := l.Allow(c.Request.Context(), identifier, bucket)
		if decision.Limit > 0 {
			c.Header(HeaderRateLimit, strconv.Itoa(decision.Limit))
			c.Header(HeaderRateRemaining, strconv.Itoa(decision.Remaining))
			c.Header(HeaderRateReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))
		}
		if !decision.Allowed {
			metrics.RecordRateLimited(bucket)
			retry := decision.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(int(retry/time.Second)))
			response.Error(c, appErrors.Clone(appErrors.ErrTooManyRequests, "Too many requests, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
