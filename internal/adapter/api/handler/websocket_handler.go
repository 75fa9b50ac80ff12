package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"rumahpasar/internal/adapter/api/middleware"
	ws "rumahpasar/internal/infrastructure/websocket"
	"rumahpasar/pkg/errors"
)

type WebSocketHandler struct {
	sessionDeps    ws.SessionDeps
	authMiddleware *middleware.AuthMiddleware
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(sessionDeps ws.SessionDeps, authMiddleware *middleware.AuthMiddleware) *WebSocketHandler {
	return &WebSocketHandler{
		sessionDeps:    sessionDeps,
		authMiddleware: authMiddleware,
	}
}

// HandleWebSocket upgrades the connection and starts a live session for
// the authenticated user. Browsers cannot set headers on WebSocket
// requests, so the token is also accepted as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.sessionDeps.Manager.Register <- client

	// The request context dies when the HTTP handler returns, so the
	// session runs on its own context until the socket closes.
	session := ws.NewSession(h.sessionDeps, userID, client)
	session.Start(context.Background())

	go func() {
		client.ReadPump(h.sessionDeps.Manager, session.HandleFrame)
		session.Close()
	}()
	go client.WritePump()

	return nil
}
