package repository

import (
	"context"

	"rumahpasar/internal/domain/entity"
)

type PropertyFilter struct {
	City        string
	Type        string
	Status      string
	ListingType string
	SellerID    string
}

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	List(ctx context.Context, filter PropertyFilter, limit, offset int) ([]*entity.Property, int64, error)
	CountBySellerID(ctx context.Context, sellerID string) (int64, error)
	IncrementViews(ctx context.Context, id string) error
}
