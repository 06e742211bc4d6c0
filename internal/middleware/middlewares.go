package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/config"
	"github.com/motionmix/montage-backend/internal/jobqueue"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type MiddlewareManager struct {
	cfg         *config.Config
	rateLimiter jobqueue.RateLimiter
	logger      logger.Logger
}

func NewMiddlewareManager(cfg *config.Config, rateLimiter jobqueue.RateLimiter, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{
		cfg:         cfg,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RequestLoggerMiddleware logs method, path, status and latency per request.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		req := c.Request()
		res := c.Response()
		mw.logger.Infof("Method: %s, URI: %s, Status: %d, Latency: %s, RequestID: %s",
			req.Method, req.URL.String(), res.Status, time.Since(start), utils.GetRequestID(c),
		)
		return err
	}
}
