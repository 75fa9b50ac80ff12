package repository

import (
	"context"

	"rumahpasar/internal/domain/entity"
)

type SavedPropertyRepository interface {
	Create(ctx context.Context, item *entity.SavedProperty) error
	Delete(ctx context.Context, userID, propertyID string) error
	GetByUserAndProperty(ctx context.Context, userID, propertyID string) (*entity.SavedProperty, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedProperty, int64, error)
}
