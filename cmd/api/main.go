package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"rumahpasar/internal/adapter/api"
	"rumahpasar/internal/adapter/api/handler"
	apimiddleware "rumahpasar/internal/adapter/api/middleware"
	"rumahpasar/internal/adapter/api/router"
	"rumahpasar/internal/adapter/repository"
	"rumahpasar/internal/infrastructure/firebase"
	"rumahpasar/internal/infrastructure/websocket"
	"rumahpasar/internal/usecase"
	"rumahpasar/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Try to get service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	} else {
		log.Printf("Using application default credentials")
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	propertyRepo := repository.NewFirestorePropertyRepository(firestoreClient)
	transactionRepo := repository.NewFirestoreTransactionRepository(firestoreClient)
	withdrawalRepo := repository.NewFirestoreWithdrawalRepository(firestoreClient)
	savedPropertyRepo := repository.NewFirestoreSavedPropertyRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	userUseCase := usecase.NewUserUseCase(userRepo, propertyRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, messageRepo, userRepo, notificationRepo, wsManager)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, userRepo, chatUseCase, notificationUseCase)
	savedPropertyUseCase := usecase.NewSavedPropertyUseCase(savedPropertyRepo, propertyRepo)
	walletUseCase := usecase.NewWalletUseCase(transactionRepo, withdrawalRepo, propertyRepo, userRepo, notificationUseCase, cfg.WithdrawalFee)

	handler.Setup(userUseCase, propertyUseCase, notificationUseCase, savedPropertyUseCase, walletUseCase)
	handler.SetupHealthHandler()
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(websocket.SessionDeps{
		Manager:     wsManager,
		NotifRepo:   notificationRepo,
		ConvRepo:    conversationRepo,
		MsgRepo:     messageRepo,
		UserRepo:    userRepo,
		ChatUseCase: chatUseCase,
		UserUseCase: userUseCase,
	}, authMiddleware)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupDevRouter(e, cfg.Environment)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
