package entity

import (
	"time"
)

type SavedProperty struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"user_id" firestore:"userId"`
	PropertyID string    `json:"property_id" firestore:"propertyId"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

type SavedPropertyWithListing struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	Property   *Property `json:"property"`
	CreatedAt  time.Time `json:"created_at"`
}
