package repository

import (
	"context"

	"rumahpasar/internal/domain/entity"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string) ([]*entity.Transaction, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error
	GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error)
	Update(ctx context.Context, withdrawal *entity.WithdrawalRequest) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WithdrawalRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error)
}
