package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/middleware"
	"github.com/motionmix/montage-backend/internal/tracks"
)

func MapTrackRoutes(trackGroup *echo.Group, h tracks.Handler, mw *middleware.MiddlewareManager) {
	trackGroup.POST("/upload", h.UploadTrack(), mw.UploadRateLimit)
	trackGroup.GET("", h.ListTracks())
	trackGroup.GET("/:track_id", h.GetTrackByID())
	trackGroup.DELETE("/:track_id", h.DeleteTrack())
}
