package usecase

import (
	"context"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/internal/infrastructure/ratelimit"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/logger"
)

type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	chatUseCase  *ChatUseCase
	notifUseCase *NotificationUseCase
	rateLimiter  *ratelimit.RateLimiter
}

func NewPropertyUseCase(
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	chatUseCase *ChatUseCase,
	notifUseCase *NotificationUseCase,
) *PropertyUseCase {
	return &PropertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		chatUseCase:  chatUseCase,
		notifUseCase: notifUseCase,
		rateLimiter:  ratelimit.NewRateLimiter(),
	}
}

type CreatePropertyInput struct {
	Title        string
	Description  string
	Price        float64
	Type         string
	ListingType  string
	Address      string
	City         string
	Province     string
	Bedrooms     int
	Bathrooms    int
	BuildingArea float64
	LandArea     float64
	ImageURLs    []string
}

type UpdatePropertyInput struct {
	Title       string
	Description string
	Price       float64
	Status      string
	ImageURLs   []string
}

func (uc *PropertyUseCase) Create(ctx context.Context, sellerID string, input CreatePropertyInput) (*entity.Property, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}

	images := make([]entity.PropertyImage, 0, len(input.ImageURLs))
	for i, url := range input.ImageURLs {
		images = append(images, entity.PropertyImage{
			URL:          url,
			DisplayOrder: i,
		})
	}

	property := &entity.Property{
		SellerID:     sellerID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Type:         input.Type,
		ListingType:  input.ListingType,
		Status:       "available",
		Address:      input.Address,
		City:         input.City,
		Province:     input.Province,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		BuildingArea: input.BuildingArea,
		LandArea:     input.LandArea,
		Images:       images,
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		logger.Error("Create property failed for seller %s: %v", sellerID, err)
		return nil, err
	}

	// First listing turns a buyer into a seller for role classification
	if !seller.IsSeller {
		seller.IsSeller = true
		if err := uc.userRepo.Update(ctx, seller); err != nil {
			logger.Error("Failed to flag user %s as seller: %v", sellerID, err)
		}
	}

	return property, nil
}

func (uc *PropertyUseCase) List(ctx context.Context, filter repository.PropertyFilter, limit, offset int) ([]*entity.Property, int64, error) {
	return uc.propertyRepo.List(ctx, filter, limit, offset)
}

func (uc *PropertyUseCase) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// View counting is best effort
	if err := uc.propertyRepo.IncrementViews(ctx, id); err != nil {
		logger.Error("Failed to increment views for property %s: %v", id, err)
	}

	return property, nil
}

func (uc *PropertyUseCase) Update(ctx context.Context, sellerID, id string, input UpdatePropertyInput) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.SellerID != sellerID {
		return nil, errors.Forbidden("You can only update your own listings", nil)
	}

	if input.Title != "" {
		property.Title = input.Title
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.Price > 0 {
		property.Price = input.Price
	}
	if input.Status != "" {
		property.Status = input.Status
	}
	if input.ImageURLs != nil {
		images := make([]entity.PropertyImage, 0, len(input.ImageURLs))
		for i, url := range input.ImageURLs {
			images = append(images, entity.PropertyImage{URL: url, DisplayOrder: i})
		}
		property.Images = images
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		logger.Error("Update property %s failed: %v", id, err)
		return nil, err
	}

	return property, nil
}

func (uc *PropertyUseCase) Archive(ctx context.Context, sellerID, id string) error {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if property.SellerID != sellerID {
		return errors.Forbidden("You can only archive your own listings", nil)
	}

	property.Status = "archived"
	now := time.Now()
	property.DeletedAt = &now

	return uc.propertyRepo.Update(ctx, property)
}

// Inquire starts (or reuses) a conversation between the buyer and the
// listing's owner, sends the inquiry as the first message and emits a
// property notification to the owner. The three steps are independent
// writes; a failure after the first leaves the earlier ones standing.
func (uc *PropertyUseCase) Inquire(ctx context.Context, buyerID, propertyID, message string) (*ConversationResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "inquire")
	if !allowed {
		logger.Warn("Inquire rate limited: user %s must wait %v", buyerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another inquiry", waitTime)
	}

	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if property.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot inquire about your own listing", nil)
	}

	conversation, err := uc.chatUseCase.StartConversation(ctx, buyerID, StartConversationInput{
		ParticipantIDs: []string{property.SellerID},
		PropertyID:     propertyID,
	})
	if err != nil {
		return nil, err
	}

	if message != "" {
		if _, err := uc.chatUseCase.SendMessage(ctx, buyerID, SendMessageInput{
			ConversationID: conversation.ID,
			Content:        message,
			Type:           entity.MessageTypeText,
		}); err != nil {
			logger.Error("Inquire: failed to send inquiry message for property %s: %v", propertyID, err)
			return nil, err
		}
	}

	buyer := ""
	if user, err := uc.userRepo.GetByID(ctx, buyerID); err == nil {
		buyer = user.Username
	}

	uc.notifUseCase.Notify(ctx, NotifyInput{
		UserID:  property.SellerID,
		Title:   "New inquiry",
		Message: buyer + " is interested in " + property.Title,
		Type:    entity.NotificationTypeProperty,
		Data: map[string]interface{}{
			"property_id":     propertyID,
			"conversation_id": conversation.ID,
		},
	})

	return conversation, nil
}
