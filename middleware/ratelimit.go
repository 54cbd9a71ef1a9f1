package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/kushauth/pkg"
	"github.com/akinalp/kushauth/pkg/ratelimit"
	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware, client IP başına istek kotası uygular.
// Sadece /api/auth/ grubunu sarar.
type RateLimitMiddleware struct {
	limiter    ratelimit.Limiter
	trustProxy bool
	log        *logrus.Entry
}

// NewRateLimitMiddleware, constructor.
// trustProxy true ise client IP'si X-Forwarded-For / X-Real-IP'den okunur.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, trustProxy bool) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:    limiter,
		trustProxy: trustProxy,
		log:        logrus.WithField("component", "ratelimit"),
	}
}

// Limit, kota aşılmışsa 429 döner ve next'i çağırmaz.
//
// Backend hatasında (ör: Redis erişilemez) request geçirilir ve loglanır,
// limiter arızası auth'u tamamen kilitlemez.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ratelimit.ExtractIP(r, m.trustProxy)

		decision, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			m.log.WithError(err).WithField("ip", key).Warn("limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := ratelimit.RetryAfterSeconds(decision.RetryAfter)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			m.log.WithField("ip", key).Info("rate limit exceeded")
			pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests, please try again in %s",
					ratelimit.FormatRetryMessage(retryAfter)))
			return
		}

		next.ServeHTTP(w, r)
	})
}
