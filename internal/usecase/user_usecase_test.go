package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahpasar/internal/domain/entity"
)

func TestClassifyRole(t *testing.T) {
	userRepo := newMemUserRepo(
		&entity.User{ID: "admin", Role: "admin", IsSeller: true},
		&entity.User{ID: "agent", Role: "user", IsSeller: true},
		&entity.User{ID: "lister", Role: "user"},
		&entity.User{ID: "visitor", Role: "user"},
	)
	propertyRepo := newMemPropertyRepo(
		&entity.Property{ID: "p1", SellerID: "lister", Status: "available"},
	)

	uc := NewUserUseCase(userRepo, propertyRepo)
	ctx := context.Background()

	// Admin wins over the seller flag.
	assert.Equal(t, RoleAdmin, uc.ClassifyRole(ctx, "admin"))

	// Seller via explicit flag or via at least one active listing.
	assert.Equal(t, RoleSeller, uc.ClassifyRole(ctx, "agent"))
	assert.Equal(t, RoleSeller, uc.ClassifyRole(ctx, "lister"))

	assert.Equal(t, RoleBuyer, uc.ClassifyRole(ctx, "visitor"))

	// No user resolves to none, never an error.
	assert.Equal(t, RoleNone, uc.ClassifyRole(ctx, ""))
	assert.Equal(t, RoleNone, uc.ClassifyRole(ctx, "ghost"))
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newMemUserRepo(
		&entity.User{ID: "u1", Username: "budi", Bio: "old bio"},
	)
	propertyRepo := newMemPropertyRepo()

	uc := NewUserUseCase(userRepo, propertyRepo)

	user, err := uc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
		Bio:  "new bio",
		City: "Bandung",
	})
	require.NoError(t, err)

	// Unset fields are left alone.
	assert.Equal(t, "budi", user.Username)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "Bandung", user.City)
}

func TestUpdatePresence(t *testing.T) {
	userRepo := newMemUserRepo(
		&entity.User{ID: "u1", OnlineStatus: "offline"},
	)
	uc := NewUserUseCase(userRepo, newMemPropertyRepo())

	uc.UpdatePresence(context.Background(), "u1", "online")

	user, err := userRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "online", user.OnlineStatus)
}
