package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	CreateDownloads() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	DeleteVideo() echo.HandlerFunc
}
