package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone" firestore:"phone"`
	Bio      string `json:"bio" firestore:"bio"`
	Role     string `json:"role" firestore:"role"` // "admin" or "user"
	Status   string `json:"status" firestore:"status"`

	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Address  string `json:"address,omitempty" firestore:"address,omitempty"`
	City     string `json:"city,omitempty" firestore:"city,omitempty"`

	// Seller flag set when the user registers as a property agent/owner.
	// Users with active listings are treated as sellers regardless of the flag.
	IsSeller bool `json:"is_seller" firestore:"isSeller"`

	AvatarURL    string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	LastSeen     time.Time `json:"last_seen" firestore:"lastSeen"`
	OnlineStatus string    `json:"online_status" firestore:"onlineStatus"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ChatParticipant is the read-only projection of a user shown in
// conversation lists. Presence is derived from the stored online status,
// not authoritative.
type ChatParticipant struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Online    bool   `json:"online"`
}

func (u *User) ToChatParticipant() *ChatParticipant {
	return &ChatParticipant{
		ID:        u.ID,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Online:    u.OnlineStatus == "online",
	}
}
