package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/insighthq/customer-intelligence/internal/api/metrics"
)

// RateLimitObserver watches the global request rate with a token bucket but
// never rejects: requests over the budget are logged and counted, then
// allowed through. Enforcement is deliberately out of scope.
func RateLimitObserver(rps float64, burst int, log zerolog.Logger) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				metrics.RateLimitExceededTotal.Inc()
				log.Warn().
					Str("ip", c.RealIP()).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Float64("rps_budget", rps).
					Msg("rate budget exceeded, request allowed (observe-only)")
			}
			return next(c)
		}
	}
}
