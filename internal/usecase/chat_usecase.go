package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/internal/infrastructure/ratelimit"
	"rumahpasar/pkg/errors"
)

type ChatUseCase struct {
	convRepo    repository.ConversationRepository
	msgRepo     repository.MessageRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
	alerts      Alerter
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	alerts Alerter,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		convRepo:    convRepo,
		msgRepo:     msgRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		alerts:      alerts,
		rateLimiter: rateLimiter,
	}
}

type StartConversationInput struct {
	ParticipantIDs []string
	PropertyID     string
}

type SendMessageInput struct {
	ConversationID string
	Content        string
	Type           string // "text", "image", "file", "call"
	AttachmentURL  string
	CallInfo       *entity.CallInfo
}

type ConversationResponse struct {
	*entity.Conversation
	Others []*entity.ChatParticipant `json:"others,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.ChatParticipant `json:"sender,omitempty"`
}

// StartConversation returns the caller's existing conversation with the
// exact same participant set if one exists, otherwise creates a new one
// with all unread counters at zero and empty last-message fields.
//
// The existence check and the create are not atomic; two concurrent first
// contacts between the same pair can each pass the check and create
// duplicates. The read-side dedup in the chat session masks those.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*ConversationResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "start_conversation")
	if !allowed {
		log.Printf("StartConversation rate limited: user %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation", waitTime)
	}

	participants := uniqueParticipants(userID, input.ParticipantIDs)
	if len(participants) < 2 {
		return nil, errors.BadRequest("A conversation needs at least one other participant", nil)
	}

	for _, participantID := range participants {
		if participantID == userID {
			continue
		}
		if _, err := uc.userRepo.GetByID(ctx, participantID); err != nil {
			log.Printf("StartConversation: participant %s not found: %v", participantID, err)
			return nil, errors.NotFound("Participant", err)
		}
	}

	key := entity.ParticipantKey(participants)

	existing, _, err := uc.convRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		log.Printf("StartConversation: failed to scan conversations for user %s: %v", userID, err)
		return nil, err
	}
	for _, conversation := range existing {
		if conversation.ParticipantKey() == key {
			return uc.toConversationResponse(ctx, userID, conversation), nil
		}
	}

	unread := make(map[string]int, len(participants))
	for _, participantID := range participants {
		unread[participantID] = 0
	}

	conversation := &entity.Conversation{
		Participants:  participants,
		PropertyID:    input.PropertyID,
		LastMessage:   "",
		LastMessageAt: time.Now(),
		UnreadCount:   unread,
	}

	if err := uc.convRepo.Create(ctx, conversation); err != nil {
		log.Printf("StartConversation: failed to create conversation for user %s: %v", userID, err)
		return nil, err
	}

	return uc.toConversationResponse(ctx, userID, conversation), nil
}

// SendMessage writes the message and the conversation summary (last
// message fields, recipient unread counters) in one transaction. The
// follow-up notification and alert pushes are independent steps with no
// rollback.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*MessageResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		log.Printf("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please slow down", waitTime)
	}

	conversation, err := uc.convRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		log.Printf("SendMessage: conversation %s not found: %v", input.ConversationID, err)
		return nil, err
	}

	if !containsString(conversation.Participants, senderID) {
		log.Printf("SendMessage: user %s is not a participant in conversation %s", senderID, input.ConversationID)
		return nil, errors.Forbidden("User is not a participant in this conversation", nil)
	}

	messageType := input.Type
	if messageType == "" {
		messageType = entity.MessageTypeText
	}
	if messageType == entity.MessageTypeCall && input.CallInfo == nil {
		return nil, errors.BadRequest("Call messages require call info", nil)
	}

	message := &entity.Message{
		ConversationID: input.ConversationID,
		SenderID:       senderID,
		RecipientID:    otherParticipant(conversation.Participants, senderID),
		Content:        input.Content,
		Type:           messageType,
		Read:           false,
		AttachmentURL:  input.AttachmentURL,
		CallInfo:       input.CallInfo,
		CreatedAt:      time.Now(),
	}

	conversation, err = uc.msgRepo.CreateWithSummary(ctx, message)
	if err != nil {
		log.Printf("SendMessage: failed to write message for conversation %s: %v", input.ConversationID, err)
		return nil, err
	}

	sender := uc.resolveParticipant(ctx, senderID)

	// Follow-up steps: a message notification per recipient and a live
	// frame push. Neither is atomic with the send; failures are logged
	// and the message stands.
	for _, participantID := range conversation.Participants {
		if participantID == senderID {
			continue
		}
		uc.notifyNewMessage(ctx, participantID, sender, message)
	}
	uc.pushNewMessage(conversation, sender, message)

	return &MessageResponse{
		Message: message,
		Sender:  sender,
	}, nil
}

func (uc *ChatUseCase) notifyNewMessage(ctx context.Context, recipientID string, sender *entity.ChatParticipant, message *entity.Message) {
	senderName := message.SenderID
	if sender != nil && sender.Username != "" {
		senderName = sender.Username
	}

	notification := &entity.Notification{
		UserID:  recipientID,
		Title:   "New message",
		Message: senderName + " sent you a message",
		Type:    entity.NotificationTypeMessage,
		Read:    false,
		Data: map[string]interface{}{
			"conversation_id": message.ConversationID,
			"message_id":      message.ID,
		},
		CreatedAt: time.Now(),
	}

	if err := uc.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("SendMessage: failed to create notification for user %s: %v", recipientID, err)
	}
}

func (uc *ChatUseCase) pushNewMessage(conversation *entity.Conversation, sender *entity.ChatParticipant, message *entity.Message) {
	if uc.alerts == nil {
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type":            "new_message",
		"conversation_id": message.ConversationID,
		"message":         message,
		"sender":          sender,
	})
	if err != nil {
		log.Printf("SendMessage: failed to marshal new_message frame: %v", err)
		return
	}

	for _, participantID := range conversation.Participants {
		if participantID != message.SenderID {
			uc.alerts.SendToUser(participantID, frame)
		}
	}
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*MessageResponse, int64, error) {
	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		log.Printf("GetMessages: conversation %s not found: %v", conversationID, err)
		return nil, 0, err
	}

	if !containsString(conversation.Participants, userID) {
		log.Printf("GetMessages: user %s is not a participant in conversation %s", userID, conversationID)
		return nil, 0, errors.Forbidden("User is not a participant in this conversation", nil)
	}

	messages, total, err := uc.msgRepo.ListByConversation(ctx, conversationID, limit, offset)
	if err != nil {
		log.Printf("GetMessages: failed to list messages for conversation %s: %v", conversationID, err)
		return nil, 0, err
	}

	var responses []*MessageResponse
	for _, message := range messages {
		responses = append(responses, &MessageResponse{
			Message: message,
			Sender:  uc.resolveParticipant(ctx, message.SenderID),
		})
	}

	return responses, total, nil
}

// MarkConversationRead resets the caller's aggregate unread counter to
// zero. Per-message read flags are flipped separately by the message
// stream; the counter and the flags can disagree in between.
func (uc *ChatUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		log.Printf("MarkConversationRead: conversation %s not found: %v", conversationID, err)
		return err
	}

	if !containsString(conversation.Participants, userID) {
		log.Printf("MarkConversationRead: user %s is not a participant in conversation %s", userID, conversationID)
		return errors.Forbidden("User is not a participant in this conversation", nil)
	}

	if conversation.UnreadCount == nil {
		conversation.UnreadCount = make(map[string]int)
	}
	conversation.UnreadCount[userID] = 0

	if err := uc.convRepo.Update(ctx, conversation); err != nil {
		log.Printf("MarkConversationRead: failed to update conversation %s for user %s: %v", conversationID, userID, err)
		return err
	}

	return nil
}

// ListConversations is the pull-based variant of the live chat session:
// same dedup and participant resolution, for the REST surface.
func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*ConversationResponse, int64, error) {
	conversations, total, err := uc.convRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("ListConversations: failed to list conversations for user %s: %v", userID, err)
		return nil, 0, err
	}

	seen := make(map[string]bool)
	var responses []*ConversationResponse
	for _, conversation := range conversations {
		key := conversation.ParticipantKey()
		if seen[key] {
			total--
			continue
		}
		seen[key] = true
		responses = append(responses, uc.toConversationResponse(ctx, userID, conversation))
	}

	return responses, total, nil
}

func (uc *ChatUseCase) GetConversationByID(ctx context.Context, userID, conversationID string) (*ConversationResponse, error) {
	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		log.Printf("GetConversationByID: conversation %s not found: %v", conversationID, err)
		return nil, err
	}

	if !containsString(conversation.Participants, userID) {
		log.Printf("GetConversationByID: user %s is not a participant in conversation %s", userID, conversationID)
		return nil, errors.Forbidden("User is not a participant in this conversation", nil)
	}

	return uc.toConversationResponse(ctx, userID, conversation), nil
}

func (uc *ChatUseCase) toConversationResponse(ctx context.Context, userID string, conversation *entity.Conversation) *ConversationResponse {
	var others []*entity.ChatParticipant
	for _, participantID := range conversation.Participants {
		if participantID == userID {
			continue
		}
		others = append(others, uc.resolveOrPlaceholder(ctx, participantID, conversation.ID))
	}

	return &ConversationResponse{
		Conversation: conversation,
		Others:       others,
	}
}

func (uc *ChatUseCase) resolveOrPlaceholder(ctx context.Context, participantID, conversationID string) *entity.ChatParticipant {
	user, err := uc.userRepo.GetByID(ctx, participantID)
	if err != nil {
		log.Printf("Participant %s not resolved for conversation %s: %v", participantID, conversationID, err)
		return &entity.ChatParticipant{ID: participantID}
	}
	return user.ToChatParticipant()
}

func (uc *ChatUseCase) resolveParticipant(ctx context.Context, userID string) *entity.ChatParticipant {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("User %s not resolved: %v", userID, err)
		return &entity.ChatParticipant{ID: userID}
	}
	return user.ToChatParticipant()
}

func uniqueParticipants(userID string, participantIDs []string) []string {
	seen := map[string]bool{userID: true}
	participants := []string{userID}
	for _, id := range participantIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		participants = append(participants, id)
	}
	return participants
}

// otherParticipant returns the single other participant of a two-party
// conversation; group conversations have no single recipient.
func otherParticipant(participants []string, senderID string) string {
	if len(participants) != 2 {
		return ""
	}
	for _, participantID := range participants {
		if participantID != senderID {
			return participantID
		}
	}
	return ""
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
