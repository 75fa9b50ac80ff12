package handler

import (
	"log"

	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/errors"
	"rumahpasar/pkg/response"
	"rumahpasar/pkg/utils"

	"github.com/labstack/echo/v4"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

type recordTransactionRequest struct {
	PropertyID string  `json:"property_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"omitempty,gt=0"`
	Type       string  `json:"type" validate:"required,oneof=purchase booking"`
	Notes      string  `json:"notes" validate:"omitempty,max=1000"`
}

type updateTransactionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed failed cancelled"`
}

type createWithdrawalRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	BankName      string  `json:"bank_name" validate:"required"`
	AccountNumber string  `json:"account_number" validate:"required"`
	AccountName   string  `json:"account_name" validate:"required"`
}

type processWithdrawalRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" validate:"omitempty,max=1000"`
}

func (h *WalletHandler) RecordTransaction(c echo.Context) error {
	var req recordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	txn, err := h.walletUseCase.RecordTransaction(c.Request().Context(), uid, usecase.RecordTransactionInput{
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Type:       req.Type,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Printf("Error recording transaction: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, txn)
}

func (h *WalletHandler) UpdateTransactionStatus(c echo.Context) error {
	var req updateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)
	id := c.Param("id")

	txn, err := h.walletUseCase.UpdateTransactionStatus(c.Request().Context(), uid, id, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c)

	transactions, total, err := h.walletUseCase.ListUserTransactions(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, transactions, total, limit, offset)
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	uid := c.Get("uid").(string)

	balance, err := h.walletUseCase.AvailableBalance(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]float64{
		"available_balance": balance,
	})
}

func (h *WalletHandler) CreateWithdrawal(c echo.Context) error {
	var req createWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	withdrawal, err := h.walletUseCase.CreateWithdrawal(c.Request().Context(), uid, usecase.CreateWithdrawalInput{
		Amount:        req.Amount,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		log.Printf("Error creating withdrawal: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, withdrawal)
}

func (h *WalletHandler) ListMyWithdrawals(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, offset := utils.GetLimitOffset(c)

	withdrawals, err := h.walletUseCase.ListMyWithdrawals(c.Request().Context(), uid, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, withdrawals)
}

// Admin endpoints

func (h *WalletHandler) ListPendingWithdrawals(c echo.Context) error {
	limit, offset := utils.GetLimitOffset(c)

	withdrawals, err := h.walletUseCase.ListPendingWithdrawals(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, withdrawals)
}

func (h *WalletHandler) ProcessWithdrawal(c echo.Context) error {
	var req processWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Withdrawal ID is required", nil))
	}

	withdrawal, err := h.walletUseCase.ProcessWithdrawal(c.Request().Context(), adminID, id, req.Approve, req.Notes)
	if err != nil {
		log.Printf("Error processing withdrawal %s: %v", id, err)
		return response.Error(c, err)
	}

	return response.Success(c, withdrawal)
}
