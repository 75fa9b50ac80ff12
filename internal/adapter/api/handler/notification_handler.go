package handler

import (
	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
	"rumahpasar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c)

	result, total, err := h.notificationUseCase.List(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, result, total, limit, offset)
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Notification ID is required", nil))
	}

	if err := h.notificationUseCase.MarkAsRead(c.Request().Context(), uid, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllAsRead(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "All notifications marked as read",
	})
}
