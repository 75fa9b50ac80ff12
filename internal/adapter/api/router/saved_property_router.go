package router

import (
	"rumahpasar/internal/adapter/api/handler"
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSavedPropertyRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	savedPropertyHandler := handler.GetSavedPropertyHandler()

	savedGroup := e.Group("/v1/saved-properties")
	savedGroup.Use(authMiddleware.Authenticate)

	savedGroup.GET("", savedPropertyHandler.ListSavedProperties)
	savedGroup.POST("/:propertyId", savedPropertyHandler.SaveProperty)
	savedGroup.DELETE("/:propertyId", savedPropertyHandler.UnsaveProperty)
	savedGroup.GET("/:propertyId", savedPropertyHandler.IsSaved)
}
