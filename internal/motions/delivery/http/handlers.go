package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/motions"
	"github.com/motionmix/montage-backend/internal/motions/external"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/logger"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type motionHandler struct {
	motionUC motions.UseCase
	logger   logger.Logger
}

func NewMotionHandler(motionUC motions.UseCase, log logger.Logger) motions.Handler {
	return &motionHandler{motionUC: motionUC, logger: log}
}

func (h *motionHandler) CreateMotion() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.MotionCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		motion, err := h.motionUC.CreateMotion(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, motion)
	}
}

func (h *motionHandler) GetMotionByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		motionID, err := uuid.Parse(c.Param("motion_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid motion id"})
		}
		motion, err := h.motionUC.GetMotion(c.Request().Context(), motionID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, motion)
	}
}

func (h *motionHandler) ListMotions() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.motionUC.ListMotions(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *motionHandler) DeleteMotion() echo.HandlerFunc {
	return func(c echo.Context) error {
		motionID, err := uuid.Parse(c.Param("motion_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid motion id"})
		}
		if err := h.motionUC.DeleteMotion(c.Request().Context(), motionID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Motion job deleted"})
	}
}

// HandleCallback acknowledges the generation service. A missing task id is
// the only 400; everything else, including malformed bodies, redeliveries and
// unknown ids, answers 200 with a status token so the remote side stops
// retrying.
func (h *motionHandler) HandleCallback() echo.HandlerFunc {
	return func(c echo.Context) error {
		note := &external.Notification{}
		if err := c.Bind(note); err != nil {
			h.logger.Warnf("HandleCallback - malformed payload: %v", err)
			return c.JSON(http.StatusOK, map[string]string{"status": motions.CallbackIgnored})
		}
		token, err := h.motionUC.HandleCallback(c.Request().Context(), note)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"status": token})
	}
}
