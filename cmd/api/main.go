package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"wardrobe101/internal/adapter/api"
	"wardrobe101/internal/adapter/api/handler"
	apimiddleware "wardrobe101/internal/adapter/api/middleware"
	"wardrobe101/internal/adapter/api/router"
	"wardrobe101/internal/adapter/repository"
	domainrepo "wardrobe101/internal/domain/repository"
	"wardrobe101/internal/domain/service"
	"wardrobe101/internal/infrastructure/auth"
	"wardrobe101/internal/infrastructure/ratelimit"
	"wardrobe101/internal/infrastructure/storage"
	"wardrobe101/internal/infrastructure/websocket"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/config"
	"wardrobe101/pkg/logger"
)

type repositories struct {
	users  domainrepo.UserRepository
	items  domainrepo.ItemRepository
	orders domainrepo.OrderRepository
	close  func() error
}

// openRepositories uses Firestore when a project is configured, memory otherwise.
func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.FirebaseProject == "" {
		logger.Info("FIREBASE_PROJECT_ID not set, using in-memory repositories")
		return &repositories{
			users:  repository.NewMemoryUserRepository(),
			items:  repository.NewMemoryItemRepository(),
			orders: repository.NewMemoryOrderRepository(),
			close:  func() error { return nil },
		}, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("Using Firestore project %s", cfg.FirebaseProject)
	return &repositories{
		users:  repository.NewFirestoreUserRepository(client),
		items:  repository.NewFirestoreItemRepository(client),
		orders: repository.NewFirestoreOrderRepository(client),
		close:  client.Close,
	}, nil
}

// openImageStore uses GCS when a bucket is configured, the upload dir otherwise.
func openImageStore(ctx context.Context, cfg *config.Config) (service.ImageStore, error) {
	if cfg.StorageBucket != "" {
		logger.Info("Storing uploads in gs://%s", cfg.StorageBucket)
		store, err := storage.NewGCSImageStore(ctx, cfg.StorageBucket, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	logger.Info("Storing uploads in %s", cfg.UploadDir)
	store, err := storage.NewLocalImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open repositories: %v", err)
	}
	defer repos.close()

	imageStore, err := openImageStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	defer imageStore.Close()

	tokens := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)

	accountUseCase := usecase.NewAccountUseCase(repos.users, tokens)
	inventoryUseCase := usecase.NewInventoryUseCase(repos.items)
	orderUseCase := usecase.NewOrderUseCase(repos.orders, repos.items)
	uploadUseCase := usecase.NewUploadUseCase(imageStore, cfg.MaxUploadBytes)

	if cfg.IsDevelopment() {
		seedDemoData(ctx, cfg, accountUseCase, inventoryUseCase)
	}

	chatLimiter := ratelimit.NewRateLimiter()
	chatLimiter.StartCleanupRoutine(30*time.Minute, ctx.Done())
	wsManager := websocket.NewManager().WithRateLimiter(chatLimiter)
	wsManager.Start(ctx)

	handler.Setup(accountUseCase, inventoryUseCase, orderUseCase, uploadUseCase)
	handler.SetupHealthHandler()
	handler.SetupDevTokenHandler(accountUseCase, cfg.DevSeedUsername, cfg.DevSeedPassword)

	e := echo.New()
	e.HideBanner = true

	// Log the path, not the URI: the chat socket carries its token in the query.
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `${time_rfc3339} ${remote_ip} ${method} ${path} ${status} ${latency_human}` + "\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.RateLimit(cfg.RateLimitPerSecond))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(accountUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware)
	router.SetupDevRouter(e, cfg.Environment)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)
	if cfg.StorageBucket == "" {
		router.SetupStaticUploads(e, cfg.UploadDir)
	}

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown: %v", err)
	}
}

func seedDemoData(ctx context.Context, cfg *config.Config, accounts *usecase.AccountUseCase, inventory *usecase.InventoryUseCase) {
	seller, err := accounts.SeedDemoAccount(ctx, cfg.DevSeedUsername, cfg.DevSeedPassword)
	if err != nil {
		logger.Error("Failed to seed demo account: %v", err)
		return
	}
	if seller == nil {
		return
	}
	n, err := inventory.SeedDemoItems(ctx, seller.ID)
	if err != nil {
		logger.Error("Failed to seed demo items: %v", err)
		return
	}
	logger.Info("Seeded demo seller %s with %d items", seller.Email, n)
}
