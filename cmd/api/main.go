package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/ahmetyavas01/SahaBul/internal/adapter/api"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/handler"
	apimiddleware "github.com/ahmetyavas01/SahaBul/internal/adapter/api/middleware"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/api/router"
	"github.com/ahmetyavas01/SahaBul/internal/adapter/repository"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/firebase"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/geocode"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/push"
	"github.com/ahmetyavas01/SahaBul/internal/infrastructure/websocket"
	"github.com/ahmetyavas01/SahaBul/internal/usecase"
	"github.com/ahmetyavas01/SahaBul/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if path := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", path)
		}
		opts = append(opts, option.WithCredentialsFile(path))
	}
	// with neither set, application default credentials apply

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

	matchRepo := repository.NewFirestoreMatchRepository(firestoreClient)
	participantRepo := repository.NewFirestoreParticipantRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	dispatcher := push.NewDispatcher(userRepo, cfg.ExpoPushURL)
	geocoder := geocode.NewClient(cfg.GeocodeURL)

	userUseCase := usecase.NewUserUseCase(userRepo)
	matchUseCase := usecase.NewMatchUseCase(matchRepo, userRepo, geocoder, wsManager)
	participantUseCase := usecase.NewParticipantUseCase(participantRepo, matchRepo, chatRepo, userRepo, dispatcher, wsManager)
	chatUseCase := usecase.NewChatUseCase(chatRepo, matchRepo, participantRepo, userRepo, wsManager)

	handler.Setup(userUseCase, matchUseCase, participantUseCase, chatUseCase)
	handler.SetupHealthHandler(firestoreClient)

	// every connected client re-lists on this signal, so match changes
	// reach the discovery screen without polling
	stopFeed := matchUseCase.StartChangeFeed(ctx)
	defer stopFeed()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
