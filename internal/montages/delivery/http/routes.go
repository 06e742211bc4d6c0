package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/montages"
)

func MapMontageRoutes(montageGroup *echo.Group, h montages.Handler) {
	montageGroup.POST("", h.CreateMontage())
	montageGroup.GET("", h.ListMontages())
	montageGroup.GET("/:montage_id", h.GetMontageByID())
	montageGroup.DELETE("/:montage_id", h.DeleteMontage())
}
