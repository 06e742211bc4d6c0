package tracks

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadTrack() echo.HandlerFunc
	GetTrackByID() echo.HandlerFunc
	ListTracks() echo.HandlerFunc
	DeleteTrack() echo.HandlerFunc
}
