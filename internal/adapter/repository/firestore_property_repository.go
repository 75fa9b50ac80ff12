package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type firestorePropertyRepository struct {
	client *firestore.Client
}

func NewFirestorePropertyRepository(client *firestore.Client) repository.PropertyRepository {
	return &firestorePropertyRepository{
		client: client,
	}
}

func (r *firestorePropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to create property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	doc, err := r.client.Collection("properties").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Property", err)
		}
		return nil, errors.Internal("Failed to get property", err)
	}

	var property entity.Property
	if err := doc.DataTo(&property); err != nil {
		return nil, errors.Internal("Failed to parse property data", err)
	}

	return &property, nil
}

func (r *firestorePropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now()

	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to update property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) List(ctx context.Context, filter repository.PropertyFilter, limit, offset int) ([]*entity.Property, int64, error) {
	query := r.client.Collection("properties").Query

	if filter.City != "" {
		query = query.Where("city", "==", filter.City)
	}
	if filter.Type != "" {
		query = query.Where("type", "==", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.ListingType != "" {
		query = query.Where("listingType", "==", filter.ListingType)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing properties: %v", err)
		return nil, 0, errors.Internal("Failed to list properties", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var properties []*entity.Property
	for i := start; i < end; i++ {
		var property entity.Property
		if err := allDocs[i].DataTo(&property); err != nil {
			log.Printf("Error parsing property data: %v", err)
			continue
		}
		properties = append(properties, &property)
	}

	return properties, total, nil
}

func (r *firestorePropertyRepository) CountBySellerID(ctx context.Context, sellerID string) (int64, error) {
	docs, err := r.client.Collection("properties").
		Where("sellerId", "==", sellerID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count seller properties", err)
	}

	return int64(len(docs)), nil
}

func (r *firestorePropertyRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("properties").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment property views", err)
	}

	return nil
}
