package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type firestoreSavedPropertyRepository struct {
	client *firestore.Client
}

func NewFirestoreSavedPropertyRepository(client *firestore.Client) repository.SavedPropertyRepository {
	return &firestoreSavedPropertyRepository{
		client: client,
	}
}

func (r *firestoreSavedPropertyRepository) Create(ctx context.Context, item *entity.SavedProperty) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()

	_, err := r.client.Collection("savedProperties").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to save property", err)
	}

	return nil
}

func (r *firestoreSavedPropertyRepository) Delete(ctx context.Context, userID, propertyID string) error {
	item, err := r.GetByUserAndProperty(ctx, userID, propertyID)
	if err != nil {
		return err
	}

	_, err = r.client.Collection("savedProperties").Doc(item.ID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to unsave property", err)
	}

	return nil
}

func (r *firestoreSavedPropertyRepository) GetByUserAndProperty(ctx context.Context, userID, propertyID string) (*entity.SavedProperty, error) {
	docs, err := r.client.Collection("savedProperties").
		Where("userId", "==", userID).
		Where("propertyId", "==", propertyID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query saved property", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Saved property", nil)
	}

	var item entity.SavedProperty
	if err := docs[0].DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse saved property data", err)
	}

	return &item, nil
}

func (r *firestoreSavedPropertyRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.SavedProperty, int64, error) {
	allDocs, err := r.client.Collection("savedProperties").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while listing saved properties for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to list saved properties", err)
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

	var items []*entity.SavedProperty
	for i := start; i < end; i++ {
		var item entity.SavedProperty
		if err := allDocs[i].DataTo(&item); err != nil {
			log.Printf("Error parsing saved property data for user %s: %v", userID, err)
			continue
		}
		items = append(items, &item)
	}

	return items, total, nil
}
