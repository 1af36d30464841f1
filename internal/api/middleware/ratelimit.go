package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api/metrics"
	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
)

// LoginRateLimit caps login submissions per client IP. GET requests pass
// through. The counter is reset once a login succeeds. Limiter failures are
// logged and the request is let through.
func LoginRateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "login:" + c.RealIP()

			ok, err := limiter.Allow(ctx, key)
			if err != nil {
				log.Warn().Err(err).Msg("login rate limit check failed")
				return next(c)
			}
			if !ok {
				metrics.LoginsTotal.WithLabelValues("throttled").Inc()
				log.Warn().Str("ip", c.RealIP()).Msg("login rate limit exceeded")
				return domain.ErrTooManyAttempts
			}

			before := SessionFrom(c)
			if err := next(c); err != nil {
				return err
			}

			if after := SessionFrom(c); after != nil && after != before {
				if err := limiter.Reset(ctx, key); err != nil {
					log.Warn().Err(err).Msg("login rate limit reset failed")
				}
			}
			return nil
		}
	}
}
