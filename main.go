package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/SAP-F-2025/tutoring-service/api/swagger"
	"github.com/SAP-F-2025/tutoring-service/internal/cache"
	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/events"
	"github.com/SAP-F-2025/tutoring-service/internal/handlers"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories/casdoor"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories/google"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
	"github.com/SAP-F-2025/tutoring-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.NewZapLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync(logger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", "error", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		UserTTL:     cfg.Cache.UserTTL,
		VideoTTL:    cfg.Cache.VideoTTL,
		Logger:      logger,
	})
	if err := repoManager.Initialize(); err != nil {
		logger.Error("Failed to initialize repositories", "error", err)
		os.Exit(1)
	}

	identityProvider, err := newIdentityProvider(cfg, repoManager.CacheManager())
	if err != nil {
		logger.Error("Failed to configure authentication", "error", err)
		os.Exit(1)
	}

	publisher, err := events.NewEventPublisher(cfg.Kafka, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher", "error", err)
		os.Exit(1)
	}

	// Initialize services
	serviceManager := services.NewServiceManager(
		repoManager.GetRepository(),
		logger,
		validator.New(),
		publisher,
		services.ServiceManagerConfig{Meeting: cfg.Meeting},
	)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := handlers.NewMetrics()
	handlers.SetupMiddleware(router, logger, metrics, cfg.AllowedOrigins)
	handlers.NewHandlerManager(serviceManager, identityProvider, metrics, logger).SetupRoutes(router)

	if !cfg.IsProduction() {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "auth", identityProvider.Name())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close connections", "error", err)
	}

	logger.Info("Server exited")
}

// newIdentityProvider chains the providers named in AUTH_PROVIDERS, or every configured
// provider when the list is empty
func newIdentityProvider(cfg *config.Config, cacheManager *cache.CacheManager) (repositories.IdentityProvider, error) {
	names := cfg.AuthProviders
	if len(names) == 0 {
		if cfg.Casdoor.Enabled() {
			names = append(names, config.ProviderCasdoor)
		}
		if cfg.Google.ClientID != "" {
			names = append(names, config.ProviderGoogle)
		}
	}

	var providers []repositories.IdentityProvider
	for _, name := range names {
		switch name {
		case config.ProviderCasdoor:
			if !cfg.Casdoor.Enabled() {
				return nil, fmt.Errorf("casdoor selected but CASDOOR_ENDPOINT, CASDOOR_CLIENT_ID or CASDOOR_CERT is missing")
			}
			providers = append(providers, casdoor.NewIdentityCasdoor(cfg.Casdoor, cacheManager))
		case config.ProviderGoogle:
			if cfg.Google.ClientID == "" {
				return nil, fmt.Errorf("google selected but GOOGLE_CLIENT_ID is missing")
			}
			providers = append(providers, google.NewIdentityGoogle(cfg.Google))
		}
	}
	if len(providers) == 0 {
		return nil, repositories.ErrNoIdentityProvider
	}
	if len(providers) == 1 {
		return providers[0], nil
	}
	return repositories.NewIdentityChain(providers...), nil
}
