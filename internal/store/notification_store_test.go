package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahpasar/internal/domain/entity"
)

func notif(id, userID, notifType string, read bool) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		UserID:    userID,
		Title:     "title",
		Message:   "body",
		Type:      notifType,
		Read:      read,
		CreatedAt: time.Now(),
	}
}

func waitSnapshot(t *testing.T, s *NotificationStore) NotificationSnapshot {
	t.Helper()
	select {
	case snap := <-s.Updates():
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification snapshot")
		return NotificationSnapshot{}
	}
}

func TestNotificationStoreUnreadCount(t *testing.T) {
	repo := newFakeNotificationRepo()
	s := NewNotificationStore("u1", repo, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	repo.push([]*entity.Notification{
		notif("n1", "u1", entity.NotificationTypeMessage, false),
		notif("n2", "u1", entity.NotificationTypeSystem, false),
		notif("n3", "u1", entity.NotificationTypeMessage, true),
	})

	snap := waitSnapshot(t, s)
	assert.Len(t, snap.Items, 3)
	assert.Equal(t, 2, snap.Unread)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestNotificationStoreAlertsOnlyForNewUnreadMessages(t *testing.T) {
	repo := newFakeNotificationRepo()
	alerts := &fakeAlertSender{}
	s := NewNotificationStore("u1", repo, alerts)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// The initial snapshot never alerts, even with unread message
	// notifications in it.
	repo.push([]*entity.Notification{
		notif("n1", "u1", entity.NotificationTypeMessage, false),
	})
	waitSnapshot(t, s)
	assert.Equal(t, 0, alerts.count())

	// A notification that arrives later alerts once.
	repo.push([]*entity.Notification{
		notif("n2", "u1", entity.NotificationTypeMessage, false),
		notif("n1", "u1", entity.NotificationTypeMessage, false),
	})
	waitSnapshot(t, s)
	assert.Equal(t, 1, alerts.count())

	// Redelivery of the same state does not alert again, and non-message
	// notifications never alert.
	repo.push([]*entity.Notification{
		notif("n3", "u1", entity.NotificationTypeSystem, false),
		notif("n2", "u1", entity.NotificationTypeMessage, false),
		notif("n1", "u1", entity.NotificationTypeMessage, false),
	})
	waitSnapshot(t, s)
	assert.Equal(t, 1, alerts.count())
}

func TestNotificationStoreMarkAsRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	s := NewNotificationStore("u1", repo, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	repo.push([]*entity.Notification{
		notif("n1", "u1", entity.NotificationTypeMessage, false),
		notif("n2", "u1", entity.NotificationTypeMessage, true),
		notif("n3", "other", entity.NotificationTypeMessage, false),
	})
	waitSnapshot(t, s)

	require.NoError(t, s.MarkAsRead(context.Background(), "n1"))
	assert.Equal(t, []string{"n1"}, repo.updatedIDs())

	// Already read: no-op success, no extra write.
	require.NoError(t, s.MarkAsRead(context.Background(), "n2"))
	assert.Equal(t, []string{"n1"}, repo.updatedIDs())

	// Another user's notification is rejected.
	err := s.MarkAsRead(context.Background(), "n3")
	require.Error(t, err)
}

func TestNotificationStoreMarkAllAsReadToleratesFailures(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.failIDs["n2"] = true

	s := NewNotificationStore("u1", repo, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	repo.push([]*entity.Notification{
		notif("n1", "u1", entity.NotificationTypeMessage, false),
		notif("n2", "u1", entity.NotificationTypeMessage, false),
		notif("n3", "u1", entity.NotificationTypeMessage, true),
	})
	waitSnapshot(t, s)

	// One write fails, the call still reports success; the next live
	// update reconciles state.
	require.NoError(t, s.MarkAllAsRead(context.Background()))
	assert.ElementsMatch(t, []string{"n1"}, repo.updatedIDs())
}

func TestNotificationStoreConflatesSnapshots(t *testing.T) {
	repo := newFakeNotificationRepo()
	s := NewNotificationStore("u1", repo, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// Without a consumer, intermediate snapshots are dropped and only the
	// latest state remains readable.
	repo.push([]*entity.Notification{notif("n1", "u1", entity.NotificationTypeSystem, false)})
	repo.push([]*entity.Notification{
		notif("n1", "u1", entity.NotificationTypeSystem, false),
		notif("n2", "u1", entity.NotificationTypeSystem, false),
	})

	assert.Eventually(t, func() bool {
		select {
		case snap := <-s.Updates():
			return len(snap.Items) == 2
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
