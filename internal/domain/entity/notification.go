package entity

import "time"

const (
	NotificationTypeMessage     = "message"
	NotificationTypeProperty    = "property"
	NotificationTypeTransaction = "transaction"
	NotificationTypeSystem      = "system"
)

type Notification struct {
	ID      string `json:"id" firestore:"id"`
	UserID  string `json:"user_id" firestore:"userId"`
	Title   string `json:"title" firestore:"title"`
	Message string `json:"message" firestore:"message"`
	Type    string `json:"type" firestore:"type"` // "message", "property", "transaction", "system"
	Read    bool   `json:"read" firestore:"read"`

	// Optional payload, e.g. conversation or property references.
	Data map[string]interface{} `json:"data,omitempty" firestore:"data,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
