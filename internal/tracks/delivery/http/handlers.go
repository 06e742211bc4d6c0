package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/tracks"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// maxTrackSizeBytes caps multipart audio uploads at 50MB.
const maxTrackSizeBytes = 50 << 20

type trackHandler struct {
	trackUC tracks.UseCase
}

func NewTrackHandler(trackUC tracks.UseCase) tracks.Handler {
	return &trackHandler{trackUC: trackUC}
}

func (h *trackHandler) UploadTrack() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
		}
		if fileHeader.Size > maxTrackSizeBytes {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file too large"})
		}
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file"})
		}
		defer src.Close()

		input := &models.TrackUploadInput{
			Name:     c.FormValue("name"),
			Artist:   c.FormValue("artist"),
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
		track, err := h.trackUC.UploadTrack(c.Request().Context(), input, src)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, track)
	}
}

func (h *trackHandler) GetTrackByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		trackID, err := uuid.Parse(c.Param("track_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid track id"})
		}
		track, err := h.trackUC.GetTrack(c.Request().Context(), trackID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, track)
	}
}

func (h *trackHandler) ListTracks() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.trackUC.ListTracks(c.Request().Context(), c.QueryParam("search"), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *trackHandler) DeleteTrack() echo.HandlerFunc {
	return func(c echo.Context) error {
		trackID, err := uuid.Parse(c.Param("track_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid track id"})
		}
		if err := h.trackUC.DeleteTrack(c.Request().Context(), trackID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Track deleted"})
	}
}
