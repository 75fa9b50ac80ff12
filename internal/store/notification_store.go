package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

// NotificationSnapshot is the full notification state published on every
// backend change, newest first.
type NotificationSnapshot struct {
	Items  []*entity.Notification `json:"items"`
	Unread int                    `json:"unread"`
}

// NotificationStore maintains one user's live notification list.
type NotificationStore struct {
	userID string
	repo   repository.NotificationRepository
	alerts AlertSender

	mu     sync.RWMutex
	items  []*entity.Notification
	unread int
	known  map[string]bool

	updates chan NotificationSnapshot
	cancel  context.CancelFunc
}

func NewNotificationStore(userID string, repo repository.NotificationRepository, alerts AlertSender) *NotificationStore {
	return &NotificationStore{
		userID:  userID,
		repo:    repo,
		alerts:  alerts,
		known:   make(map[string]bool),
		updates: make(chan NotificationSnapshot, 1),
	}
}

// Start attaches the live query and begins consuming snapshots. The store
// runs until Stop is called or ctx is cancelled.
func (s *NotificationStore) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	ch, err := s.repo.WatchByUserID(ctx, s.userID)
	if err != nil {
		cancel()
		return errors.Internal("Failed to subscribe to notifications", err)
	}

	s.cancel = cancel
	go s.run(ch)
	return nil
}

func (s *NotificationStore) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Updates publishes the latest snapshot after every change. Slow consumers
// only ever see the most recent state; intermediate snapshots are dropped.
func (s *NotificationStore) Updates() <-chan NotificationSnapshot {
	return s.updates
}

func (s *NotificationStore) Snapshot() NotificationSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NotificationSnapshot{Items: s.items, Unread: s.unread}
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *NotificationStore) run(ch <-chan []*entity.Notification) {
	initial := true
	for items := range ch {
		s.apply(items, initial)
		initial = false
	}
}

func (s *NotificationStore) apply(items []*entity.Notification, initial bool) {
	unread := 0
	var arrived []*entity.Notification

	s.mu.Lock()
	for _, n := range items {
		if !n.Read {
			unread++
			if !initial && !s.known[n.ID] && n.Type == entity.NotificationTypeMessage {
				arrived = append(arrived, n)
			}
		}
		s.known[n.ID] = true
	}
	s.items = items
	s.unread = unread
	s.mu.Unlock()

	// New unread message notifications trigger a transient alert push.
	for _, n := range arrived {
		s.pushAlert(n)
	}

	s.publish(NotificationSnapshot{Items: items, Unread: unread})
}

func (s *NotificationStore) pushAlert(n *entity.Notification) {
	if s.alerts == nil {
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type": "alert",
		"data": n,
	})
	if err != nil {
		log.Printf("Failed to marshal alert for notification %s: %v", n.ID, err)
		return
	}

	s.alerts.SendToUser(s.userID, frame)
}

func (s *NotificationStore) publish(snap NotificationSnapshot) {
	for {
		select {
		case s.updates <- snap:
			return
		default:
			// Drop the stale snapshot and retry with the fresh one
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// MarkAsRead flips the notification's read flag. Marking an already-read
// notification is a no-op success.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if notification.UserID != s.userID {
		return errors.Forbidden("Notification belongs to another user", nil)
	}

	if notification.Read {
		return nil
	}

	notification.Read = true
	return s.repo.Update(ctx, notification)
}

// MarkAllAsRead issues one independent write per locally-unread
// notification. Partial failures are logged and accepted; the next live
// update reconciles local state with whatever the backend holds.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) error {
	s.mu.RLock()
	var ids []string
	for _, n := range s.items {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	s.mu.RUnlock()

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.MarkAsRead(ctx, id); err != nil {
				log.Printf("MarkAllAsRead: notification %s for user %s: %v", id, s.userID, err)
			}
		}(id)
	}
	wg.Wait()

	return nil
}

type AddNotificationInput struct {
	UserID  string
	Title   string
	Message string
	Type    string
	Data    map[string]interface{}
}

// Add creates an unread notification for a target user. Fire-and-forget:
// failures are logged, never surfaced to the caller.
func (s *NotificationStore) Add(ctx context.Context, input AddNotificationInput) {
	notification := &entity.Notification{
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Read:      false,
		Data:      input.Data,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		log.Printf("Failed to create notification for user %s: %v", input.UserID, err)
	}
}
