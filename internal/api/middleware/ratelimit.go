package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"portfolio_pro/internal/common"

	"github.com/redis/go-redis/v9"
)

// ResetRequestLimiter throttles the forgot-password endpoint per client IP
// with a fixed Redis window, so the endpoint cannot be used to spray reset
// emails. A Redis outage fails open: losing throttling briefly beats taking
// password recovery down with it.
type ResetRequestLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger *slog.Logger
}

func NewResetRequestLimiter(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) *ResetRequestLimiter {
	return &ResetRequestLimiter{rdb: rdb, limit: limit, window: window, logger: logger}
}

func (l *ResetRequestLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("reset_req:%s", clientIP(r))

		count, err := l.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			l.logger.Warn("reset rate limiter unavailable, failing open", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(r.Context(), key, l.window)
		}
		if count > int64(l.limit) {
			common.RespondWithError(w, common.HTTPStatusFromError(common.ErrTooManyRequests),
				"Too many reset requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from X-Forwarded-For.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
