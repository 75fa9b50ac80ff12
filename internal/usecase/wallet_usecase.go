package usecase

import (
	"context"
	"fmt"
	"time"

	"rumahpasar/internal/domain/entity"
	"rumahpasar/internal/domain/repository"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/logger"
)

// WalletUseCase keeps transaction and withdrawal records. Settlement of
// funds happens outside the system; this layer only tracks status.
type WalletUseCase struct {
	transactionRepo repository.TransactionRepository
	withdrawalRepo  repository.WithdrawalRepository
	propertyRepo    repository.PropertyRepository
	userRepo        repository.UserRepository
	notifUseCase    *NotificationUseCase
	withdrawalFee   float64
}

func NewWalletUseCase(
	transactionRepo repository.TransactionRepository,
	withdrawalRepo repository.WithdrawalRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	notifUseCase *NotificationUseCase,
	withdrawalFee float64,
) *WalletUseCase {
	return &WalletUseCase{
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		notifUseCase:    notifUseCase,
		withdrawalFee:   withdrawalFee,
	}
}

type RecordTransactionInput struct {
	PropertyID string
	Amount     float64
	Type       string // "purchase", "booking"
	Notes      string
}

type CreateWithdrawalInput struct {
	Amount        float64
	BankName      string
	AccountNumber string
	AccountName   string
}

// RecordTransaction creates a pending transaction record for a property
// purchase or booking and notifies the seller. The record and the
// notification are independent writes.
func (uc *WalletUseCase) RecordTransaction(ctx context.Context, buyerID string, input RecordTransactionInput) (*entity.Transaction, error) {
	property, err := uc.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	if property.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot buy your own listing", nil)
	}
	if property.Status != "available" {
		return nil, errors.BadRequest("Property is not available", nil)
	}

	amount := input.Amount
	if amount <= 0 {
		amount = property.Price
	}

	transaction := &entity.Transaction{
		PropertyID: input.PropertyID,
		BuyerID:    buyerID,
		SellerID:   property.SellerID,
		Amount:     amount,
		Type:       input.Type,
		Status:     "pending",
		Notes:      input.Notes,
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		logger.Error("RecordTransaction failed for buyer %s, property %s: %v", buyerID, input.PropertyID, err)
		return nil, err
	}

	uc.notifUseCase.Notify(ctx, NotifyInput{
		UserID:  property.SellerID,
		Title:   "New transaction",
		Message: fmt.Sprintf("A %s was recorded for %s", transaction.Type, property.Title),
		Type:    entity.NotificationTypeTransaction,
		Data: map[string]interface{}{
			"transaction_id": transaction.ID,
			"property_id":    property.ID,
		},
	})

	return transaction, nil
}

// UpdateTransactionStatus moves a record through its plain-field status
// lifecycle: pending to completed, failed or cancelled.
func (uc *WalletUseCase) UpdateTransactionStatus(ctx context.Context, actorID, transactionID, newStatus string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if actorID != transaction.BuyerID && actorID != transaction.SellerID {
		return nil, errors.Forbidden("Only the buyer or seller can update this transaction", nil)
	}

	if transaction.Status != "pending" {
		return nil, errors.BadRequest("Transaction is not pending", nil)
	}

	switch newStatus {
	case "completed", "failed", "cancelled":
	default:
		return nil, errors.BadRequest("Invalid transaction status", nil)
	}

	transaction.Status = newStatus

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		logger.Error("UpdateTransactionStatus failed for transaction %s: %v", transactionID, err)
		return nil, err
	}

	counterparty := transaction.BuyerID
	if actorID == transaction.BuyerID {
		counterparty = transaction.SellerID
	}
	uc.notifUseCase.Notify(ctx, NotifyInput{
		UserID:  counterparty,
		Title:   "Transaction updated",
		Message: fmt.Sprintf("Transaction %s is now %s", transaction.ID, newStatus),
		Type:    entity.NotificationTypeTransaction,
		Data:    map[string]interface{}{"transaction_id": transaction.ID},
	})

	return transaction, nil
}

func (uc *WalletUseCase) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, int64, error) {
	return uc.transactionRepo.ListByUserID(ctx, userID, limit, offset)
}

// AvailableBalance is the sum of the user's completed sales minus the
// amounts already claimed by pending or approved withdrawals.
func (uc *WalletUseCase) AvailableBalance(ctx context.Context, userID string) (float64, error) {
	completed, err := uc.transactionRepo.ListBySellerID(ctx, userID, "completed")
	if err != nil {
		return 0, err
	}

	var balance float64
	for _, transaction := range completed {
		balance += transaction.Amount
	}

	withdrawals, err := uc.withdrawalRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return 0, err
	}
	for _, withdrawal := range withdrawals {
		if withdrawal.Status == "pending" || withdrawal.Status == "approved" {
			balance -= withdrawal.Amount
		}
	}

	return balance, nil
}

func (uc *WalletUseCase) CreateWithdrawal(ctx context.Context, userID string, input CreateWithdrawalInput) (*entity.WithdrawalRequest, error) {
	if input.Amount <= uc.withdrawalFee {
		return nil, errors.BadRequest("Amount must exceed the withdrawal fee", nil)
	}

	balance, err := uc.AvailableBalance(ctx, userID)
	if err != nil {
		logger.Error("CreateWithdrawal: balance check failed for user %s: %v", userID, err)
		return nil, err
	}

	if input.Amount > balance {
		return nil, errors.BadRequest("Insufficient balance for withdrawal", nil)
	}

	withdrawal := &entity.WithdrawalRequest{
		UserID:        userID,
		Amount:        input.Amount,
		Fee:           uc.withdrawalFee,
		NetAmount:     input.Amount - uc.withdrawalFee,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountName:   input.AccountName,
		Status:        "pending",
	}

	if err := uc.withdrawalRepo.Create(ctx, withdrawal); err != nil {
		logger.Error("CreateWithdrawal failed for user %s: %v", userID, err)
		return nil, err
	}

	return withdrawal, nil
}

func (uc *WalletUseCase) ListMyWithdrawals(ctx context.Context, userID string, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	return uc.withdrawalRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *WalletUseCase) ListPendingWithdrawals(ctx context.Context, limit, offset int) ([]*entity.WithdrawalRequest, error) {
	return uc.withdrawalRepo.ListPending(ctx, limit, offset)
}

// ProcessWithdrawal approves or rejects a pending request and notifies
// its owner.
func (uc *WalletUseCase) ProcessWithdrawal(ctx context.Context, adminID, withdrawalID string, approve bool, notes string) (*entity.WithdrawalRequest, error) {
	withdrawal, err := uc.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	if withdrawal.Status != "pending" {
		return nil, errors.BadRequest("Withdrawal request is not pending", nil)
	}

	now := time.Now()
	if approve {
		withdrawal.Status = "approved"
	} else {
		withdrawal.Status = "rejected"
	}
	withdrawal.AdminNotes = notes
	withdrawal.ProcessedBy = adminID
	withdrawal.ProcessedAt = &now

	if err := uc.withdrawalRepo.Update(ctx, withdrawal); err != nil {
		logger.Error("ProcessWithdrawal failed for request %s: %v", withdrawalID, err)
		return nil, err
	}

	uc.notifUseCase.Notify(ctx, NotifyInput{
		UserID:  withdrawal.UserID,
		Title:   "Withdrawal " + withdrawal.Status,
		Message: fmt.Sprintf("Your withdrawal request of %.0f IDR was %s", withdrawal.Amount, withdrawal.Status),
		Type:    entity.NotificationTypeTransaction,
		Data:    map[string]interface{}{"withdrawal_id": withdrawal.ID},
	})

	return withdrawal, nil
}
