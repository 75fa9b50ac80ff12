package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"rumahpasar/internal/domain/repository"
	"rumahpasar/internal/store"
	"rumahpasar/internal/usecase"
)

// Client protocol verbs.
const (
	FrameTypePing              = "ping"
	FrameTypePong              = "pong"
	FrameTypeOpenConversation  = "open_conversation"
	FrameTypeCloseConversation = "close_conversation"
	FrameTypeMarkNotifRead     = "mark_notification_read"
	FrameTypeMarkAllNotifRead  = "mark_all_notifications_read"
	FrameTypeNotifications     = "notifications"
	FrameTypeConversations     = "conversations"
	FrameTypeMessages          = "messages"
	FrameTypeError             = "error"
)

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

// SessionDeps carries everything a connection session needs to build its
// stores.
type SessionDeps struct {
	Manager     *Manager
	NotifRepo   repository.NotificationRepository
	ConvRepo    repository.ConversationRepository
	MsgRepo     repository.MessageRepository
	UserRepo    repository.UserRepository
	ChatUseCase *usecase.ChatUseCase
	UserUseCase *usecase.UserUseCase
}

// Session owns the live stores of one connected user: a notification
// store and a chat session for the whole connection, plus one message
// stream for the currently open conversation. Stores are constructed per
// session and torn down with it.
type Session struct {
	deps   SessionDeps
	userID string
	client *Client

	ctx    context.Context
	cancel context.CancelFunc

	notifications *store.NotificationStore
	conversations *store.ChatSession

	mu           sync.Mutex
	stream       *store.MessageStream
	streamCancel context.CancelFunc
}

func NewSession(deps SessionDeps, userID string, client *Client) *Session {
	return &Session{
		deps:   deps,
		userID: userID,
		client: client,
	}
}

// Start builds and starts the connection-lifetime stores. A store that
// fails to attach is logged and left unstarted; the client simply never
// receives that snapshot stream.
func (s *Session) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.notifications = store.NewNotificationStore(s.userID, s.deps.NotifRepo, s.deps.Manager)
	if err := s.notifications.Start(s.ctx); err != nil {
		log.Printf("Session %s: notification store failed to start: %v", s.userID, err)
	} else {
		go s.forwardNotifications()
	}

	s.conversations = store.NewChatSession(s.userID, s.deps.ConvRepo, s.deps.UserRepo)
	if err := s.conversations.Start(s.ctx); err != nil {
		log.Printf("Session %s: chat session failed to start: %v", s.userID, err)
	} else {
		go s.forwardConversations()
	}

	s.deps.UserUseCase.UpdatePresence(s.ctx, s.userID, "online")
}

// Close tears the session down. In-flight writes started by the stores
// are not cancelled; their results are discarded with the session.
func (s *Session) Close() {
	s.closeStream()
	if s.cancel != nil {
		s.cancel()
	}

	s.deps.UserUseCase.UpdatePresence(context.WithoutCancel(s.ctx), s.userID, "offline")
}

// HandleFrame processes one inbound client frame.
func (s *Session) HandleFrame(raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.Printf("Session %s: bad frame: %v", s.userID, err)
		s.sendError("Malformed frame")
		return
	}

	switch frame.Type {
	case FrameTypePing:
		s.send(map[string]interface{}{"type": FrameTypePong})

	case FrameTypeOpenConversation:
		s.openConversation(frame.ConversationID)

	case FrameTypeCloseConversation:
		s.closeStream()

	case FrameTypeMarkNotifRead:
		if err := s.notifications.MarkAsRead(s.ctx, frame.NotificationID); err != nil {
			log.Printf("Session %s: mark notification %s read: %v", s.userID, frame.NotificationID, err)
			s.sendError("Failed to mark notification as read")
		}

	case FrameTypeMarkAllNotifRead:
		if err := s.notifications.MarkAllAsRead(s.ctx); err != nil {
			log.Printf("Session %s: mark all notifications read: %v", s.userID, err)
			s.sendError("Failed to mark notifications as read")
		}

	default:
		log.Printf("Session %s: unknown frame type %q", s.userID, frame.Type)
	}
}

// openConversation switches the session's message stream to the given
// conversation and resets the caller's aggregate unread counter. The
// counter reset is independent of the per-message read marking the
// stream performs on each snapshot.
func (s *Session) openConversation(conversationID string) {
	if conversationID == "" {
		s.sendError("conversation_id is required")
		return
	}

	if _, err := s.deps.ChatUseCase.GetConversationByID(s.ctx, s.userID, conversationID); err != nil {
		log.Printf("Session %s: open conversation %s: %v", s.userID, conversationID, err)
		s.sendError("Conversation not available")
		return
	}

	s.closeStream()

	streamCtx, streamCancel := context.WithCancel(s.ctx)
	stream := store.NewMessageStream(s.userID, conversationID, s.deps.MsgRepo)
	if err := stream.Start(streamCtx); err != nil {
		log.Printf("Session %s: message stream for conversation %s failed to start: %v", s.userID, conversationID, err)
		streamCancel()
		return
	}

	s.mu.Lock()
	s.stream = stream
	s.streamCancel = streamCancel
	s.mu.Unlock()

	go s.forwardMessages(streamCtx, stream)

	if err := s.deps.ChatUseCase.MarkConversationRead(s.ctx, s.userID, conversationID); err != nil {
		log.Printf("Session %s: reset unread counter for conversation %s: %v", s.userID, conversationID, err)
	}
}

func (s *Session) closeStream() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		s.stream.Stop()
		s.streamCancel()
		s.stream = nil
		s.streamCancel = nil
	}
}

func (s *Session) forwardNotifications() {
	for {
		select {
		case snap := <-s.notifications.Updates():
			s.send(map[string]interface{}{
				"type": FrameTypeNotifications,
				"data": snap,
			})
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) forwardConversations() {
	for {
		select {
		case views := <-s.conversations.Updates():
			s.send(map[string]interface{}{
				"type": FrameTypeConversations,
				"data": views,
			})
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) forwardMessages(ctx context.Context, stream *store.MessageStream) {
	for {
		select {
		case messages := <-stream.Updates():
			s.send(map[string]interface{}{
				"type":            FrameTypeMessages,
				"conversation_id": stream.ConversationID(),
				"data":            messages,
			})
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) send(payload map[string]interface{}) {
	frame, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Session %s: marshal frame: %v", s.userID, err)
		return
	}
	s.deps.Manager.SendToUser(s.userID, frame)
}

func (s *Session) sendError(message string) {
	s.send(map[string]interface{}{
		"type":    FrameTypeError,
		"message": message,
	})
}
