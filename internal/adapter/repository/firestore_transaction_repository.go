package repository

import (
	"context"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to update transaction", err)
	}

	return nil
}

// ListByUserID returns transactions where the user is either side,
// merged and sorted newest first. Two equality queries avoid a
// composite OR index.
func (r *firestoreTransactionRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	var transactions []*entity.Transaction

	for _, field := range []string{"buyerId", "sellerId"} {
		docs, err := r.client.Collection("transactions").
			Where(field, "==", userID).
			Documents(ctx).GetAll()
		if err != nil {
			log.Printf("Firestore error while fetching transactions for user %s: %v", userID, err)
			return nil, 0, errors.Internal("Failed to fetch transactions", err)
		}

		for _, doc := range docs {
			var transaction entity.Transaction
			if err := doc.DataTo(&transaction); err != nil {
				log.Printf("Error parsing transaction data for user %s: %v", userID, err)
				continue
			}
			transactions = append(transactions, &transaction)
		}
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})

	total := int64(len(transactions))

	start := offset
	end := len(transactions)
	if limit > 0 {
		end = start + limit
		if end > len(transactions) {
			end = len(transactions)
		}
	}
	if start > len(transactions) {
		start = len(transactions)
	}

	return transactions[start:end], total, nil
}

func (r *firestoreTransactionRepository) ListBySellerID(ctx context.Context, sellerID string, status string) ([]*entity.Transaction, error) {
	query := r.client.Collection("transactions").Where("sellerId", "==", sellerID)
	if status != "" {
		query = query.Where("status", "==", status)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch seller transactions", err)
	}

	var transactions []*entity.Transaction
	for _, doc := range docs {
		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			log.Printf("Error parsing transaction data for seller %s: %v", sellerID, err)
			continue
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, nil
}
