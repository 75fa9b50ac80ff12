package handler

import (
	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
	"rumahpasar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type SavedPropertyHandler struct {
	savedPropertyUseCase *usecase.SavedPropertyUseCase
}

func NewSavedPropertyHandler(savedPropertyUseCase *usecase.SavedPropertyUseCase) *SavedPropertyHandler {
	return &SavedPropertyHandler{
		savedPropertyUseCase: savedPropertyUseCase,
	}
}

func (h *SavedPropertyHandler) SaveProperty(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("propertyId")
	if propertyID == "" {
		return response.Error(c, errors.BadRequest("Property ID is required", nil))
	}

	saved, err := h.savedPropertyUseCase.Save(c.Request().Context(), uid, propertyID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, saved)
}

func (h *SavedPropertyHandler) UnsaveProperty(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("propertyId")
	if propertyID == "" {
		return response.Error(c, errors.BadRequest("Property ID is required", nil))
	}

	if err := h.savedPropertyUseCase.Unsave(c.Request().Context(), uid, propertyID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Property removed from saved list",
	})
}

func (h *SavedPropertyHandler) IsSaved(c echo.Context) error {
	uid := c.Get("uid").(string)
	propertyID := c.Param("propertyId")

	saved, err := h.savedPropertyUseCase.IsSaved(c.Request().Context(), uid, propertyID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"saved": saved,
	})
}

func (h *SavedPropertyHandler) ListSavedProperties(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c)

	items, total, err := h.savedPropertyUseCase.List(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, items, total, limit, offset)
}
