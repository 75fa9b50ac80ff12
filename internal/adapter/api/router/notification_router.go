package router

import (
	"rumahpasar/internal/adapter/api/handler"
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)

	notificationGroup.GET("", notificationHandler.ListNotifications)
	notificationGroup.PUT("/:id/read", notificationHandler.MarkAsRead)
	notificationGroup.PUT("/read-all", notificationHandler.MarkAllAsRead)
}
