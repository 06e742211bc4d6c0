package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/avatars"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/utils"
)

// maxAvatarSizeBytes caps avatar image uploads at 200MB.
const maxAvatarSizeBytes = 200 << 20

type avatarHandler struct {
	avatarUC avatars.UseCase
}

func NewAvatarHandler(avatarUC avatars.UseCase) avatars.Handler {
	return &avatarHandler{avatarUC: avatarUC}
}

func (h *avatarHandler) UploadAvatar() echo.HandlerFunc {
	return func(c echo.Context) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
		}
		if fileHeader.Size > maxAvatarSizeBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
		}
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file"})
		}
		defer src.Close()

		avatar, err := h.avatarUC.UploadAvatar(
			c.Request().Context(),
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			fileHeader.Size,
			src,
		)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, avatar)
	}
}

func (h *avatarHandler) GetAvatarByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		avatarID, err := uuid.Parse(c.Param("avatar_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid avatar id"})
		}
		avatar, err := h.avatarUC.GetAvatar(c.Request().Context(), avatarID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, avatar)
	}
}

func (h *avatarHandler) ListAvatars() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.avatarUC.ListAvatars(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *avatarHandler) DeleteAvatar() echo.HandlerFunc {
	return func(c echo.Context) error {
		avatarID, err := uuid.Parse(c.Param("avatar_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid avatar id"})
		}
		if err := h.avatarUC.DeleteAvatar(c.Request().Context(), avatarID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.NoContent(http.StatusNoContent)
	}
}
