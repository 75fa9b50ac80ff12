package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumahpasar/internal/domain/entity"
)

func TestNotificationListCountsUnread(t *testing.T) {
	notifRepo := newMemNotificationRepo()
	uc := NewNotificationUseCase(notifRepo)

	uc.Notify(context.Background(), NotifyInput{
		UserID: "u1", Title: "New message", Type: entity.NotificationTypeMessage,
	})
	uc.Notify(context.Background(), NotifyInput{
		UserID: "u1", Title: "Listing update", Type: entity.NotificationTypeProperty,
	})
	uc.Notify(context.Background(), NotifyInput{
		UserID: "u2", Title: "Other user", Type: entity.NotificationTypeSystem,
	})

	resp, total, err := uc.List(context.Background(), "u1", 20, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Unread)
}

func TestNotificationMarkAsRead(t *testing.T) {
	notifRepo := newMemNotificationRepo()
	uc := NewNotificationUseCase(notifRepo)

	uc.Notify(context.Background(), NotifyInput{
		UserID: "u1", Title: "New message", Type: entity.NotificationTypeMessage,
	})
	notifs := notifRepo.forUser("u1")
	require.Len(t, notifs, 1)
	id := notifs[0].ID

	require.NoError(t, uc.MarkAsRead(context.Background(), "u1", id))

	resp, _, err := uc.List(context.Background(), "u1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Unread)

	// Marking again is a no-op success; another user is rejected.
	require.NoError(t, uc.MarkAsRead(context.Background(), "u1", id))
	require.Error(t, uc.MarkAsRead(context.Background(), "u2", id))
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	notifRepo := newMemNotificationRepo()
	uc := NewNotificationUseCase(notifRepo)

	for i := 0; i < 4; i++ {
		uc.Notify(context.Background(), NotifyInput{
			UserID: "u1", Title: "ping", Type: entity.NotificationTypeMessage,
		})
	}
	uc.Notify(context.Background(), NotifyInput{
		UserID: "u2", Title: "other", Type: entity.NotificationTypeMessage,
	})

	require.NoError(t, uc.MarkAllAsRead(context.Background(), "u1"))

	resp, _, err := uc.List(context.Background(), "u1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Unread)

	// The other user's notifications are untouched.
	otherResp, _, err := uc.List(context.Background(), "u2", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, otherResp.Unread)
}
