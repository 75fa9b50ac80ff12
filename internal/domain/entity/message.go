package entity

import "time"

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
	MessageTypeCall  = "call"
)

type Message struct {
	ID             string `json:"id" firestore:"id"`
	ConversationID string `json:"conversation_id" firestore:"conversationId"`
	SenderID       string `json:"sender_id" firestore:"senderId"`
	// RecipientID is set for two-party conversations; empty for group
	// conversations, where unread bookkeeping is per-participant on the
	// conversation itself.
	RecipientID string `json:"recipient_id,omitempty" firestore:"recipientId,omitempty"`
	Content     string `json:"content" firestore:"content"`
	Type        string `json:"type" firestore:"type"` // "text", "image", "file", "call"
	Read        bool   `json:"read" firestore:"read"`

	AttachmentURL string `json:"attachment_url,omitempty" firestore:"attachmentUrl,omitempty"`

	CallInfo *CallInfo `json:"call_info,omitempty" firestore:"callInfo,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// CallInfo records the metadata of a call message. Call records are data
// only; no signaling happens in this layer.
type CallInfo struct {
	Kind            string `json:"kind" firestore:"kind"` // "voice", "video"
	DurationSeconds int    `json:"duration_seconds" firestore:"durationSeconds"`
	Outcome         string `json:"outcome" firestore:"outcome"` // "completed", "missed", "declined"
}
