package handler

import (
	"github.com/labstack/echo/v4"

	"rumahpasar/internal/domain/repository"
	"rumahpasar/internal/infrastructure/firebase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
)

type DevTokenHandler struct {
	firebaseAuth *firebase.AuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(firebaseAuth *firebase.AuthClient, userRepo repository.UserRepository) {
	devTokenHandler = &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

// GenerateToken mints a custom token for the given user so local clients
// can sign in without going through the full auth flow.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	uid := c.Param("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateToken(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
