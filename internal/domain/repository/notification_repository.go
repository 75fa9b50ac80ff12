package repository

import (
	"context"

	"rumahpasar/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, notification *entity.Notification) error

	// ListByUserID returns the user's notifications newest first.
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)

	// WatchByUserID attaches a live query over the user's notifications,
	// newest first, re-delivering the full snapshot on every change.
	WatchByUserID(ctx context.Context, userID string) (<-chan []*entity.Notification, error)
}
