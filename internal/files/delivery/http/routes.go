package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/files"
)

func MapFileRoutes(fileGroup *echo.Group, h files.Handler) {
	fileGroup.GET("/:kind/:key", h.ResolveFile())
}
