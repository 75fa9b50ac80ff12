package entity

import (
	"time"
)

// Transaction is a record of a property purchase or booking. This layer
// keeps records only; payment settlement happens outside the system.
type Transaction struct {
	ID         string  `json:"id" firestore:"id"`
	PropertyID string  `json:"property_id" firestore:"propertyId"`
	BuyerID    string  `json:"buyer_id" firestore:"buyerId"`
	SellerID   string  `json:"seller_id" firestore:"sellerId"`
	Amount     float64 `json:"amount" firestore:"amount"`
	Type       string  `json:"type" firestore:"type"`     // "purchase", "booking"
	Status     string  `json:"status" firestore:"status"` // "pending", "completed", "failed", "cancelled"
	Notes      string  `json:"notes,omitempty" firestore:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type WithdrawalRequest struct {
	ID        string  `json:"id" firestore:"id"`
	UserID    string  `json:"user_id" firestore:"userId"`
	Amount    float64 `json:"amount" firestore:"amount"`
	Fee       float64 `json:"fee" firestore:"fee"`
	NetAmount float64 `json:"net_amount" firestore:"netAmount"`

	BankName      string `json:"bank_name" firestore:"bankName"`
	AccountNumber string `json:"account_number" firestore:"accountNumber"`
	AccountName   string `json:"account_name" firestore:"accountName"`

	Status      string     `json:"status" firestore:"status"` // "pending", "approved", "rejected"
	AdminNotes  string     `json:"admin_notes,omitempty" firestore:"adminNotes,omitempty"`
	ProcessedBy string     `json:"processed_by,omitempty" firestore:"processedBy,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" firestore:"processedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
