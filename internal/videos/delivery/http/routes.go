package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, h videos.Handler) {
	videoGroup.POST("/download", h.CreateDownloads())
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.DELETE("/:video_id", h.DeleteVideo())
}
