package usecase

import (
	"context"
	"log"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type SavedPropertyUseCase struct {
	savedRepo    repository.SavedPropertyRepository
	propertyRepo repository.PropertyRepository
}

func NewSavedPropertyUseCase(savedRepo repository.SavedPropertyRepository, propertyRepo repository.PropertyRepository) *SavedPropertyUseCase {
	return &SavedPropertyUseCase{
		savedRepo:    savedRepo,
		propertyRepo: propertyRepo,
	}
}

func (uc *SavedPropertyUseCase) Save(ctx context.Context, userID, propertyID string) (*entity.SavedProperty, error) {
	if _, err := uc.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, errors.NotFound("Property", err)
	}

	existing, err := uc.savedRepo.GetByUserAndProperty(ctx, userID, propertyID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	item := &entity.SavedProperty{
		UserID:     userID,
		PropertyID: propertyID,
	}

	if err := uc.savedRepo.Create(ctx, item); err != nil {
		log.Printf("Save property %s failed for user %s: %v", propertyID, userID, err)
		return nil, err
	}

	return item, nil
}

func (uc *SavedPropertyUseCase) Unsave(ctx context.Context, userID, propertyID string) error {
	return uc.savedRepo.Delete(ctx, userID, propertyID)
}

func (uc *SavedPropertyUseCase) IsSaved(ctx context.Context, userID, propertyID string) (bool, error) {
	_, err := uc.savedRepo.GetByUserAndProperty(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the user's saved properties with the listing projection
// attached. A listing that fails to load leaves its entry without the
// projection rather than failing the list.
func (uc *SavedPropertyUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedPropertyWithListing, int64, error) {
	items, total, err := uc.savedRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var result []*entity.SavedPropertyWithListing
	for _, item := range items {
		entry := &entity.SavedPropertyWithListing{
			ID:         item.ID,
			UserID:     item.UserID,
			PropertyID: item.PropertyID,
			CreatedAt:  item.CreatedAt,
		}

		property, err := uc.propertyRepo.GetByID(ctx, item.PropertyID)
		if err != nil {
			log.Printf("Saved property %s: listing %s not resolved: %v", item.ID, item.PropertyID, err)
		} else {
			entry.Property = property
		}

		result = append(result, entry)
	}

	return result, total, nil
}
