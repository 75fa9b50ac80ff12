package router

import (
	"rumahpasar/internal/adapter/api/handler"
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPropertyRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	propertyHandler := handler.GetPropertyHandler()

	// Public listing browse
	publicGroup := e.Group("/v1/properties")
	publicGroup.GET("", propertyHandler.ListProperties)
	publicGroup.GET("/:id", propertyHandler.GetProperty)

	// Authenticated listing management
	authGroup := e.Group("/v1/properties")
	authGroup.Use(authMiddleware.Authenticate)

	authGroup.POST("", propertyHandler.CreateProperty)
	authGroup.PATCH("/:id", propertyHandler.UpdateProperty)
	authGroup.DELETE("/:id", propertyHandler.ArchiveProperty)
	authGroup.POST("/:id/inquire", propertyHandler.InquireProperty)
}
