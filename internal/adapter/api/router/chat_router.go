package router

import (
	"rumahpasar/internal/adapter/api/handler"
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupChatRouter sets up all chat-related routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartConversation)
	chatGroup.GET("", chatHandler.ListConversations)
	chatGroup.GET("/:id", chatHandler.GetConversation)
	chatGroup.PUT("/:id/read", chatHandler.MarkConversationRead)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.GetMessages)
}
