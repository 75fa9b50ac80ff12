package router

import (
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupUserRouter(e, authMiddleware)
	SetupPropertyRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupSavedPropertyRouter(e, authMiddleware)
	SetupWalletRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
