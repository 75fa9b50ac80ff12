package store

import (
	"context"
	"log"
	"sync"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

// MessageStream maintains the live message list of one open conversation
// for one user. Every backend change re-delivers the full ordered snapshot,
// oldest first; callers diff snapshots themselves if they need increments.
//
// Incoming messages still unread for the stream's user are marked read with
// one independent write each. Those writes are not batched and are not
// atomic with the conversation's aggregate unread counter, which is reset
// separately when the conversation is opened.
type MessageStream struct {
	userID         string
	conversationID string
	msgRepo        repository.MessageRepository

	mu       sync.RWMutex
	messages []*entity.Message

	updates  chan []*entity.Message
	writeCtx context.Context
	cancel   context.CancelFunc
}

func NewMessageStream(userID, conversationID string, msgRepo repository.MessageRepository) *MessageStream {
	return &MessageStream{
		userID:         userID,
		conversationID: conversationID,
		msgRepo:        msgRepo,
		updates:        make(chan []*entity.Message, 1),
	}
}

func (s *MessageStream) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	ch, err := s.msgRepo.WatchByConversation(ctx, s.conversationID)
	if err != nil {
		cancel()
		return errors.Internal("Failed to subscribe to messages", err)
	}

	// Read-receipt writes started before teardown keep running after Stop;
	// their results are discarded with the stream.
	s.writeCtx = context.WithoutCancel(ctx)
	s.cancel = cancel
	go s.run(ch)
	return nil
}

func (s *MessageStream) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *MessageStream) ConversationID() string {
	return s.conversationID
}

func (s *MessageStream) Updates() <-chan []*entity.Message {
	return s.updates
}

func (s *MessageStream) Snapshot() []*entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messages
}

func (s *MessageStream) run(ch <-chan []*entity.Message) {
	for messages := range ch {
		s.apply(messages)
	}
}

func (s *MessageStream) apply(messages []*entity.Message) {
	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()

	s.publish(messages)

	for _, message := range messages {
		if message.RecipientID == s.userID && !message.Read {
			go s.markRead(message.ID)
		}
	}
}

func (s *MessageStream) markRead(messageID string) {
	if err := s.msgRepo.MarkRead(s.writeCtx, messageID); err != nil {
		log.Printf("MessageStream: mark read failed for message %s in conversation %s: %v", messageID, s.conversationID, err)
	}
}

func (s *MessageStream) publish(messages []*entity.Message) {
	for {
		select {
		case s.updates <- messages:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
