package http

import (
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/avatars"
)

func MapAvatarRoutes(avatarGroup *echo.Group, h avatars.Handler) {
	avatarGroup.POST("", h.UploadAvatar())
	avatarGroup.GET("", h.ListAvatars())
	avatarGroup.GET("/:avatar_id", h.GetAvatarByID())
	avatarGroup.DELETE("/:avatar_id", h.DeleteAvatar())
}
