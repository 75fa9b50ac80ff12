package repository

import (
	"context"
	"log"
	"sort"
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

type firestoreWithdrawalRepository struct {
	client *firestore.Client
}

func NewFirestoreWithdrawalRepository(client *firestore.Client) repository.WithdrawalRepository {
	return &firestoreWithdrawalRepository{
		client: client,
	}
}

func (r *firestoreWithdrawalRepository) Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	if withdrawal.ID == "" {
		withdrawal.ID = uuid.New().String()
	}

	now := time.Now()
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now

	_, err := r.client.Collection("withdrawalRequests").Doc(withdrawal.ID).Set(ctx, withdrawal)
	if err != nil {
		return errors.Internal("Failed to create withdrawal request", err)
	}

	return nil
}

func (r *firestoreWithdrawalRepository) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	doc, err := r.client.Collection("withdrawalRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Withdrawal request", err)
		}
		return nil, errors.Internal("Failed to get withdrawal request", err)
	}

	var withdrawal entity.WithdrawalRequest
	if err := doc.DataTo(&withdrawal); err != nil {
		return nil, errors.Internal("Failed to parse withdrawal request data", err)
	}

	return &withdrawal, nil
}

func (r *firestoreWithdrawalRepository) Update(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	withdrawal.UpdatedAt = time.Now()

	_, err := r.client.Collection("withdrawalRequests").Doc(withdrawal.ID).Set(ctx, withdrawal)
	if err != nil {
		return errors.Internal("Failed to update withdrawal request", err)
	}

	return nil
}

// ListByUserID uses an equality-only query to avoid a composite index;
// ordering happens in memory.
func (r *firestoreWithdrawalRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	query := r.client.Collection("withdrawalRequests").Where("userId", "==", userID)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var withdrawals []*entity.WithdrawalRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Error iterating withdrawal requests for user %s: %v", userID, err)
			return []*entity.WithdrawalRequest{}, nil
		}

		var withdrawal entity.WithdrawalRequest
		if err := doc.DataTo(&withdrawal); err != nil {
			log.Printf("Error parsing withdrawal request data: %v", err)
			continue
		}

		withdrawals = append(withdrawals, &withdrawal)
	}

	sort.Slice(withdrawals, func(i, j int) bool {
		return withdrawals[i].CreatedAt.After(withdrawals[j].CreatedAt)
	})

	start := offset
	end := len(withdrawals)
	if limit > 0 {
		end = start + limit
		if end > len(withdrawals) {
			end = len(withdrawals)
		}
	}
	if start > len(withdrawals) {
		start = len(withdrawals)
	}

	return withdrawals[start:end], nil
}

func (r *firestoreWithdrawalRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	query := r.client.Collection("withdrawalRequests").Where("status", "==", "pending")

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	withdrawals := []*entity.WithdrawalRequest{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Error iterating pending withdrawal requests: %v", err)
			return withdrawals, nil
		}

		var withdrawal entity.WithdrawalRequest
		if err := doc.DataTo(&withdrawal); err != nil {
			log.Printf("Error parsing withdrawal request data: %v", err)
			continue
		}

		withdrawals = append(withdrawals, &withdrawal)
	}

	return withdrawals, nil
}
