package entity

import (
	"time"
)

type PropertyImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Property struct {
	ID          string  `json:"id" firestore:"id"`
	SellerID    string  `json:"seller_id" firestore:"sellerId"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Price       float64 `json:"price" firestore:"price"`
	Type        string  `json:"type" firestore:"type"`     // "house", "apartment", "land", "commercial"
	Status      string  `json:"status" firestore:"status"` // "available", "pending", "sold", "archived"
	ListingType string  `json:"listing_type" firestore:"listingType"` // "sale", "rent"

	Address  string `json:"address" firestore:"address"`
	City     string `json:"city" firestore:"city"`
	Province string `json:"province,omitempty" firestore:"province,omitempty"`

	Bedrooms     int     `json:"bedrooms,omitempty" firestore:"bedrooms,omitempty"`
	Bathrooms    int     `json:"bathrooms,omitempty" firestore:"bathrooms,omitempty"`
	BuildingArea float64 `json:"building_area,omitempty" firestore:"buildingArea,omitempty"` // square meters
	LandArea     float64 `json:"land_area,omitempty" firestore:"landArea,omitempty"`

	Images []PropertyImage `json:"images" firestore:"images"`

	Views    int  `json:"views" firestore:"views"`
	Featured bool `json:"featured" firestore:"featured"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
