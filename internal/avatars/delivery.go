package avatars

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadAvatar() echo.HandlerFunc
	GetAvatarByID() echo.HandlerFunc
	ListAvatars() echo.HandlerFunc
	DeleteAvatar() echo.HandlerFunc
}
