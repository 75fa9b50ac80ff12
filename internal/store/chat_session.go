package store

import (
	"context"
	"log"
	"sync"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

// ConversationView is a conversation with its other participants resolved
// to display projections.
type ConversationView struct {
	*entity.Conversation
	Others []*entity.ChatParticipant `json:"others"`
}

// ChatSession maintains one user's live conversation list. Conversations
// whose participant sets are equal as sets are collapsed before exposure,
// which masks duplicates created by concurrent first-contact attempts.
type ChatSession struct {
	userID   string
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository

	mu            sync.RWMutex
	conversations []*ConversationView
	profiles      map[string]*entity.ChatParticipant

	updates chan []*ConversationView
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewChatSession(userID string, convRepo repository.ConversationRepository, userRepo repository.UserRepository) *ChatSession {
	return &ChatSession{
		userID:   userID,
		convRepo: convRepo,
		userRepo: userRepo,
		profiles: make(map[string]*entity.ChatParticipant),
		updates:  make(chan []*ConversationView, 1),
	}
}

func (s *ChatSession) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	ch, err := s.convRepo.WatchByUserID(ctx, s.userID)
	if err != nil {
		cancel()
		return errors.Internal("Failed to subscribe to conversations", err)
	}

	s.ctx = ctx
	s.cancel = cancel
	go s.run(ch)
	return nil
}

func (s *ChatSession) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *ChatSession) Updates() <-chan []*ConversationView {
	return s.updates
}

func (s *ChatSession) Snapshot() []*ConversationView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversations
}

func (s *ChatSession) run(ch <-chan []*entity.Conversation) {
	for conversations := range ch {
		s.apply(conversations)
	}
}

func (s *ChatSession) apply(conversations []*entity.Conversation) {
	deduped := dedupeByParticipants(conversations)

	views := make([]*ConversationView, 0, len(deduped))
	for _, conversation := range deduped {
		views = append(views, &ConversationView{
			Conversation: conversation,
			Others:       s.resolveOthers(conversation),
		})
	}

	s.mu.Lock()
	s.conversations = views
	s.mu.Unlock()

	s.publish(views)
}

// dedupeByParticipants collapses conversations with set-equal participant
// sets, keeping the most recently active one.
func dedupeByParticipants(conversations []*entity.Conversation) []*entity.Conversation {
	seen := make(map[string]*entity.Conversation)
	var deduped []*entity.Conversation

	for _, conversation := range conversations {
		key := conversation.ParticipantKey()
		existing, ok := seen[key]
		if !ok {
			seen[key] = conversation
			deduped = append(deduped, conversation)
			continue
		}
		if conversation.LastMessageAt.After(existing.LastMessageAt) {
			// Replace in place so ordering stays by last message time
			for i, c := range deduped {
				if c == existing {
					deduped[i] = conversation
					break
				}
			}
			seen[key] = conversation
		}
	}

	return deduped
}

// resolveOthers looks up each other participant once per session and caches
// the projection. A failed lookup leaves that participant unresolved; it
// never fails the snapshot.
func (s *ChatSession) resolveOthers(conversation *entity.Conversation) []*entity.ChatParticipant {
	var others []*entity.ChatParticipant

	for _, participantID := range conversation.Participants {
		if participantID == s.userID {
			continue
		}

		s.mu.RLock()
		cached, ok := s.profiles[participantID]
		s.mu.RUnlock()
		if ok {
			others = append(others, cached)
			continue
		}

		user, err := s.userRepo.GetByID(s.ctx, participantID)
		if err != nil {
			log.Printf("ChatSession: participant %s not resolved for conversation %s: %v", participantID, conversation.ID, err)
			others = append(others, &entity.ChatParticipant{ID: participantID})
			continue
		}

		participant := user.ToChatParticipant()
		s.mu.Lock()
		s.profiles[participantID] = participant
		s.mu.Unlock()

		others = append(others, participant)
	}

	return others
}

func (s *ChatSession) publish(views []*ConversationView) {
	for {
		select {
		case s.updates <- views:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
