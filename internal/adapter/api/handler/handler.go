package handler

import (
	"rumahpasar/internal/usecase"
)

var (
	userHandler          *UserHandler
	propertyHandler      *PropertyHandler
	notificationHandler  *NotificationHandler
	savedPropertyHandler *SavedPropertyHandler
	walletHandler        *WalletHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	propertyUseCase *usecase.PropertyUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	savedPropertyUseCase *usecase.SavedPropertyUseCase,
	walletUseCase *usecase.WalletUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	propertyHandler = NewPropertyHandler(propertyUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	savedPropertyHandler = NewSavedPropertyHandler(savedPropertyUseCase)
	walletHandler = NewWalletHandler(walletUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetPropertyHandler() *PropertyHandler {
	return propertyHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetSavedPropertyHandler() *SavedPropertyHandler {
	return savedPropertyHandler
}

func GetWalletHandler() *WalletHandler {
	return walletHandler
}
