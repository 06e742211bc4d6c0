package motions

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateMotion() echo.HandlerFunc
	GetMotionByID() echo.HandlerFunc
	ListMotions() echo.HandlerFunc
	DeleteMotion() echo.HandlerFunc
	HandleCallback() echo.HandlerFunc
}
