package files

import "github.com/labstack/echo/v4"

type Handler interface {
	ResolveFile() echo.HandlerFunc
}
