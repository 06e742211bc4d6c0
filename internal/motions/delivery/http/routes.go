package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/motions"
)

func MapMotionRoutes(motionGroup *echo.Group, h motions.Handler) {
	motionGroup.POST("", h.CreateMotion())
	motionGroup.GET("", h.ListMotions())
	motionGroup.GET("/:motion_id", h.GetMotionByID())
	motionGroup.DELETE("/:motion_id", h.DeleteMotion())
}

// MapCallbackRoutes hangs the generation-service webhook off its own group so
// it stays outside any rate limiting applied to user-facing routes.
func MapCallbackRoutes(callbackGroup *echo.Group, h motions.Handler) {
	callbackGroup.POST("/motion", h.HandleCallback())
}
