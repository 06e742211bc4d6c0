package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/motionmix/montage-backend/internal/models"
	"github.com/motionmix/montage-backend/internal/montages"
	"github.com/motionmix/montage-backend/pkg/httpErrors"
	"github.com/motionmix/montage-backend/pkg/utils"
)

type montageHandler struct {
	montageUC montages.UseCase
}

func NewMontageHandler(montageUC montages.UseCase) montages.Handler {
	return &montageHandler{montageUC: montageUC}
}

func (h *montageHandler) CreateMontage() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.MontageCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		montage, err := h.montageUC.CreateMontage(c.Request().Context(), input)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, montage)
	}
}

func (h *montageHandler) GetMontageByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		montageID, err := uuid.Parse(c.Param("montage_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid montage id"})
		}
		montage, err := h.montageUC.GetMontage(c.Request().Context(), montageID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, montage)
	}
}

func (h *montageHandler) ListMontages() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.montageUC.ListMontages(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *montageHandler) DeleteMontage() echo.HandlerFunc {
	return func(c echo.Context) error {
		montageID, err := uuid.Parse(c.Param("montage_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid montage id"})
		}
		if err := h.montageUC.DeleteMontage(c.Request().Context(), montageID); err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Montage job deleted"})
	}
}
