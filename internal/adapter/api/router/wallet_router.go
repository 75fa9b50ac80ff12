package router

import (
	"rumahpasar/internal/adapter/api/handler"
	"rumahpasar/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWalletRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	walletHandler := handler.GetWalletHandler()

	// Transaction records
	transactionGroup := e.Group("/v1/transactions")
	transactionGroup.Use(authMiddleware.Authenticate)

	transactionGroup.POST("", walletHandler.RecordTransaction)
	transactionGroup.GET("", walletHandler.ListTransactions)
	transactionGroup.PUT("/:id/status", walletHandler.UpdateTransactionStatus)

	// Seller wallet
	walletGroup := e.Group("/v1/wallet")
	walletGroup.Use(authMiddleware.Authenticate)

	walletGroup.GET("/balance", walletHandler.GetBalance)

	withdrawGroup := walletGroup.Group("/withdraw")
	withdrawGroup.POST("", walletHandler.CreateWithdrawal)
	withdrawGroup.GET("", walletHandler.ListMyWithdrawals)

	// Admin withdrawal management
	adminGroup := e.Group("/v1/admin/wallet")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.AdminOnly)

	adminGroup.GET("/pending-withdrawals", walletHandler.ListPendingWithdrawals)
	adminGroup.POST("/withdraw/:id/process", walletHandler.ProcessWithdrawal)
}
