package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

// NotificationUseCase is the pull-based surface over the notifications
// collection. Live delivery happens through the per-session notification
// store; both share the same write semantics.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notifRepo: notifRepo,
	}
}

type NotificationListResponse struct {
	Items  []*entity.Notification `json:"items"`
	Unread int                    `json:"unread"`
}

func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit, offset int) (*NotificationListResponse, int64, error) {
	notifications, total, err := uc.notifRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		log.Printf("List notifications failed for user %s: %v", userID, err)
		return nil, 0, err
	}

	unread := 0
	for _, notification := range notifications {
		if !notification.Read {
			unread++
		}
	}

	return &NotificationListResponse{Items: notifications, Unread: unread}, total, nil
}

// MarkAsRead flips the read flag; already-read notifications are a no-op
// success.
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, userID, id string) error {
	notification, err := uc.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.Forbidden("Notification belongs to another user", nil)
	}

	if notification.Read {
		return nil
	}

	notification.Read = true
	return uc.notifRepo.Update(ctx, notification)
}

// MarkAllAsRead issues one independent write per unread notification.
// Partial failures are logged, not retried, and not surfaced.
func (uc *NotificationUseCase) MarkAllAsRead(ctx context.Context, userID string) error {
	notifications, _, err := uc.notifRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		log.Printf("MarkAllAsRead: failed to list notifications for user %s: %v", userID, err)
		return err
	}

	var wg sync.WaitGroup
	for _, notification := range notifications {
		if notification.Read {
			continue
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := uc.MarkAsRead(ctx, userID, id); err != nil {
				log.Printf("MarkAllAsRead: notification %s for user %s: %v", id, userID, err)
			}
		}(notification.ID)
	}
	wg.Wait()

	return nil
}

type NotifyInput struct {
	UserID  string
	Title   string
	Message string
	Type    string // "message", "property", "transaction", "system"
	Data    map[string]interface{}
}

// Notify creates an unread notification for a target user. Fire-and-forget:
// failures are logged, never surfaced. Connected recipients get the live
// push through their notification store.
func (uc *NotificationUseCase) Notify(ctx context.Context, input NotifyInput) {
	notification := &entity.Notification{
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Read:      false,
		Data:      input.Data,
		CreatedAt: time.Now(),
	}

	if err := uc.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("Notify: failed to create notification for user %s: %v", input.UserID, err)
	}
}
