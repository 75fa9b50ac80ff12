package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

// CreateWithSummary writes the message and the conversation's denormalized
// summary fields in one transaction, so the message list and the
// conversation list can never show a half-applied send.
func (r *firestoreMessageRepository) CreateWithSummary(ctx context.Context, message *entity.Message) (*entity.Conversation, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	var conversation entity.Conversation

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		convRef := r.client.Collection("conversations").Doc(message.ConversationID)
		doc, err := tx.Get(convRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Conversation", err)
			}
			return err
		}

		conversation = entity.Conversation{}
		if err := doc.DataTo(&conversation); err != nil {
			return err
		}

		conversation.LastMessage = message.Content
		conversation.LastMessageAt = message.CreatedAt
		conversation.LastMessageSenderID = message.SenderID
		conversation.UpdatedAt = message.CreatedAt
		if conversation.UnreadCount == nil {
			conversation.UnreadCount = make(map[string]int)
		}
		for _, participantID := range conversation.Participants {
			if participantID != message.SenderID {
				conversation.UnreadCount[participantID]++
			}
		}

		msgRef := r.client.Collection("messages").Doc(message.ID)
		if err := tx.Set(msgRef, message); err != nil {
			return err
		}

		return tx.Set(convRef, &conversation)
	})
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		return nil, errors.Internal("Failed to send message", err)
	}

	return &conversation, nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	doc, err := r.client.Collection("messages").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreMessageRepository) MarkRead(ctx context.Context, id string) error {
	docRef := r.client.Collection("messages").Doc(id)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Message may be old or deleted; skip quietly
			log.Printf("MarkRead: message %s not found", id)
			return nil
		}
		return errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return errors.Internal("Failed to parse message data", err)
	}

	if message.Read {
		return nil // Already read
	}

	message.Read = true
	if _, err := docRef.Set(ctx, &message); err != nil {
		return errors.Internal("Failed to update message read flag", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while counting messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for conversation %s: %v", conversationID, err)
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreMessageRepository) WatchByConversation(ctx context.Context, conversationID string) (<-chan []*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Asc)

	snapIter := query.Snapshots(ctx)
	ch := make(chan []*entity.Message, 1)

	go func() {
		defer close(ch)
		defer snapIter.Stop()

		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				log.Printf("Message listener for conversation %s dropped: %v", conversationID, err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Printf("Error reading message snapshot for conversation %s: %v", conversationID, err)
				continue
			}

			var messages []*entity.Message
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					log.Printf("Error parsing message data for conversation %s: %v", conversationID, err)
					continue
				}
				messages = append(messages, &message)
			}

			select {
			case ch <- messages:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
