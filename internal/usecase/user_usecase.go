package usecase

import (
	"context"
	"log"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
}

func NewUserUseCase(userRepo repository.UserRepository, propertyRepo repository.PropertyRepository) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
	}
}

type UpdateProfileInput struct {
	Username  string
	Phone     string
	Bio       string
	City      string
	AvatarURL string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	return user, nil
}

// ClassifyRole produces the role classification the router consumes for
// dashboard selection. Admin wins; a user with the seller flag or at
// least one listing is a seller; any other known user is a buyer. This
// layer only produces the classification, enforcement stays with the
// route middleware.
func (uc *UserUseCase) ClassifyRole(ctx context.Context, userID string) string {
	if userID == "" {
		return RoleNone
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("ClassifyRole: user %s not found: %v", userID, err)
		return RoleNone
	}

	return uc.classify(ctx, user)
}

func (uc *UserUseCase) classify(ctx context.Context, user *entity.User) string {
	if user.Role == "admin" {
		return RoleAdmin
	}

	if user.IsSeller {
		return RoleSeller
	}

	count, err := uc.propertyRepo.CountBySellerID(ctx, user.ID)
	if err != nil {
		log.Printf("ClassifyRole: listing count failed for user %s: %v", user.ID, err)
	} else if count > 0 {
		return RoleSeller
	}

	return RoleBuyer
}

// UpdatePresence records the stored online status the chat participant
// projection derives its presence flag from. Best effort.
func (uc *UserUseCase) UpdatePresence(ctx context.Context, userID, onlineStatus string) {
	if err := uc.userRepo.UpdatePresence(ctx, userID, onlineStatus); err != nil {
		log.Printf("UpdatePresence: user %s: %v", userID, err)
	}
}
