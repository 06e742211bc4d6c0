package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/files"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
)

type fileHandler struct {
	fileUC files.UseCase
}

func NewFileHandler(fileUC files.UseCase) files.Handler {
	return &fileHandler{fileUC: fileUC}
}

// ResolveFile exchanges an artifact kind + storage key for a time-limited
// download URL. The key is the storage_key (or thumbnail/result key) the
// record endpoints already return.
func (h *fileHandler) ResolveFile() echo.HandlerFunc {
	return func(c echo.Context) error {
		url, err := h.fileUC.ResolveFileURL(
			c.Request().Context(),
			files.ArtifactKind(c.Param("kind")),
			c.Param("key"),
		)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"url": url})
	}
}
