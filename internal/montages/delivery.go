package montages

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateMontage() echo.HandlerFunc
	GetMontageByID() echo.HandlerFunc
	ListMontages() echo.HandlerFunc
	DeleteMontage() echo.HandlerFunc
}
