package repository

import (
	"context"

	"rumahpasar/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error

	// ListByUserID returns the user's conversations ordered by last message
	// time descending.
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)

	// WatchByUserID attaches a live query over the user's conversations.
	// Every change re-delivers the full ordered result set on the returned
	// channel. The channel is closed when ctx is cancelled or the listener
	// drops.
	WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// CreateWithSummary writes the message and the owning conversation's
	// denormalized summary fields (last message, unread counters) in one
	// transaction.
	CreateWithSummary(ctx context.Context, message *entity.Message) (*entity.Conversation, error)

	GetByID(ctx context.Context, id string) (*entity.Message, error)

	// MarkRead flips the message's read flag. Marking an already-read
	// message is a no-op success.
	MarkRead(ctx context.Context, id string) error

	// ListByConversation returns messages oldest first.
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)

	// WatchByConversation attaches a live query over one conversation's
	// messages, oldest first, re-delivering the full snapshot on every
	// change.
	WatchByConversation(ctx context.Context, conversationID string) (<-chan []*entity.Message, error)
}
