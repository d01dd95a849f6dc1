package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"github.com/fexraizen/lister-sub001/internal/adapter/api"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/handler"
	apimiddleware "github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/router"
	"github.com/fexraizen/lister-sub001/internal/adapter/repository"
	domainrepo "github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/service"
	"github.com/fexraizen/lister-sub001/internal/infrastructure/firebase"
	"github.com/fexraizen/lister-sub001/internal/infrastructure/ratelimit"
	"github.com/fexraizen/lister-sub001/internal/infrastructure/websocket"
	"github.com/fexraizen/lister-sub001/internal/usecase"
	"github.com/fexraizen/lister-sub001/pkg/config"
)

type repositories struct {
	users       domainrepo.UserRepository
	listings    domainrepo.ListingRepository
	shops       domainrepo.ShopRepository
	memberships domainrepo.MembershipRepository
	ledger      domainrepo.Ledger
	settlements domainrepo.SettlementRepository
	receipts    domainrepo.ReceiptRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var repos repositories
	var identity usecase.IdentityClient

	switch cfg.StorageDriver {
	case "memory":
		log.Printf("Using in-memory storage driver")
		store := repository.NewMemoryStore()
		repos = repositories{
			users:       store.Users(),
			listings:    store.Listings(),
			shops:       store.Shops(),
			memberships: store.Memberships(),
			ledger:      store.Wallets(),
			settlements: store.Settlements(),
			receipts:    store.Receipts(),
		}
		identity = firebase.NewDevIdentityClient()

	default:
		var opt option.ClientOption
		if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
			opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		} else {
			serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
			if serviceAccountPath == "" {
				log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required")
			}
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		authClient, err := firebase.NewFirebaseAuthClient(firebaseApp)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}
		identity = authClient

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		repos = repositories{
			users:       repository.NewFirestoreUserRepository(firestoreClient),
			listings:    repository.NewFirestoreListingRepository(firestoreClient),
			shops:       repository.NewFirestoreShopRepository(firestoreClient),
			memberships: repository.NewFirestoreMembershipRepository(firestoreClient),
			ledger:      repository.NewFirestoreWalletRepository(firestoreClient),
			settlements: repository.NewFirestoreSettlementRepository(firestoreClient),
			receipts:    repository.NewFirestoreReceiptRepository(firestoreClient),
		}
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notifier := websocket.NewPushNotifier(wsManager)

	resolver := service.NewResolver(repos.memberships, repos.shops, repos.ledger)

	userUseCase := usecase.NewUserUseCase(repos.users, identity)
	listingUseCase := usecase.NewListingUseCase(repos.listings, repos.shops, repos.users, resolver)
	shopUseCase := usecase.NewShopUseCase(repos.shops, repos.memberships, repos.listings, repos.users)
	purchaseUseCase := usecase.NewPurchaseUseCase(repos.listings, repos.receipts, repos.settlements, repos.users, resolver, notifier)
	walletUseCase := usecase.NewWalletUseCase(repos.ledger, repos.users)

	handler.Setup(userUseCase, listingUseCase, shopUseCase, purchaseUseCase, walletUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	limiter := ratelimit.NewRateLimiter(cfg.PurchaseRate)
	limiter.StartCleanupRoutine()

	authMiddleware := apimiddleware.NewAuthMiddleware(identity)
	adminMiddleware := apimiddleware.NewAdminMiddleware(repos.users)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)

	wsHandler := handler.NewWebSocketHandler(wsManager)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
