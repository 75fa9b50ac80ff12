package handler

import (
	"log"

	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=3"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"username":  user.Username,
		"phone":     user.Phone,
		"bio":       user.Bio,
		"avatar_url": user.AvatarURL,
		"is_seller": user.IsSeller,
	})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		log.Printf("Error binding request: %v", err)
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		log.Printf("Validation error: %v", err)
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Username:  req.Username,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"username":  user.Username,
		"phone":     user.Phone,
		"bio":       user.Bio,
		"avatar_url": user.AvatarURL,
	})
}

// GetRole reports the caller's marketplace role: admin, seller or buyer.
func (h *UserHandler) GetRole(c echo.Context) error {
	uid := c.Get("uid").(string)

	role := h.userUseCase.ClassifyRole(c.Request().Context(), uid)

	return response.Success(c, map[string]string{
		"role": role,
	})
}
