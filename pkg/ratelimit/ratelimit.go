package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/pkg/config"
)

// Store keeps fixed window counters. Memory and Redis implementations are provided.
type Store = limiter.Store

// Decision is the outcome of a limiter check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the wait until the window resets, rounded up to whole seconds.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait <= 0 {
		return 0
	}
	return wait.Truncate(time.Second) + time.Second
}

// Limiter applies named fixed window rules to identifiers.
type Limiter struct {
	buckets map[string]*limiter.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

// New builds one limiter per configured bucket over a shared store. Buckets without a
// positive allowance are skipped.
func New(store Store, rules map[string]config.RateLimitRule, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	buckets := make(map[string]*limiter.Limiter, len(rules))
	for name, rule := range rules {
		if rule.MaxRequests <= 0 || rule.Window <= 0 {
			continue
		}
		buckets[name] = limiter.New(store, limiter.Rate{Period: rule.Window, Limit: int64(rule.MaxRequests)})
	}
	return &Limiter{buckets: buckets, logger: logger, now: time.Now}
}

// Allow records a hit for identifier in bucket. A nil limiter, unknown buckets and
// store failures allow the request.
func (l *Limiter) Allow(ctx context.Context, identifier, bucket string) (Decision, error) {
	if l == nil {
		return Decision{Allowed: true}, nil
	}
	bucketLimiter, ok := l.buckets[bucket]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	limit := int(bucketLimiter.Rate.Limit)
	state, err := bucketLimiter.Get(ctx, fmt.Sprintf("%s:%s", bucket, identifier))
	if err != nil {
		l.logger.Warn("rate limit store unavailable, allowing request",
			zap.String("bucket", bucket), zap.Error(err))
		return Decision{Allowed: true, Limit: limit, Remaining: limit, ResetAt: l.now().Add(bucketLimiter.Rate.Period)}, err
	}

	return Decision{
		Allowed:   !state.Reached,
		Limit:     int(state.Limit),
		Remaining: int(state.Remaining),
		ResetAt:   time.Unix(state.Reset, 0),
	}, nil
}
