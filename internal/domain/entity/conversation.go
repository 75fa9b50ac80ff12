package entity

import (
	"sort"
	"strings"
	"time"
)

type Conversation struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`

	// Optional listing context for conversations started from an inquiry.
	PropertyID string `json:"property_id,omitempty" firestore:"propertyId,omitempty"`

	LastMessage         string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt       time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	LastMessageSenderID string    `json:"last_message_sender_id,omitempty" firestore:"lastMessageSenderId,omitempty"`

	// Map of userID to that participant's unread message count.
	UnreadCount map[string]int `json:"unread_count" firestore:"unreadCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ParticipantKey returns an order-insensitive key for the conversation's
// participant set. Two conversations with the same key are the same logical
// conversation.
func (c *Conversation) ParticipantKey() string {
	return ParticipantKey(c.Participants)
}

func ParticipantKey(participants []string) string {
	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
