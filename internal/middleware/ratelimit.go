package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// UploadRateLimit throttles uploads per client IP through a shared Redis
// counter, so the limit holds across orchestration instances.
func (mw *MiddlewareManager) UploadRateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := mw.cfg.Redis.UploadRateLimit
		if limit <= 0 {
			return next(c)
		}
		window := time.Duration(mw.cfg.Redis.UploadRateTTL) * time.Second
		if window <= 0 {
			window = time.Minute
		}

		allowed, err := mw.rateLimiter.Allow(c.Request().Context(), "upload:"+utils.GetIPAddress(c), limit, window)
		if err != nil {
			// The limiter being down should not take uploads down with it.
			mw.logger.Errorf("UploadRateLimit - Allow: %v", err)
			return next(c)
		}
		if !allowed {
			restErr := httpErrors.NewTooManyRequestsError("rate limit exceeded")
			return c.JSON(restErr.Status(), restErr)
		}
		return next(c)
	}
}
