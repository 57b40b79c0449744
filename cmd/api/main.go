package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository/memory"
	"github.com/marcos-nsantos/famly-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/server"
	authUC "github.com/marcos-nsantos/famly-backend/internal/usecase/auth"
)

const serviceName = "famly-api"

//	@title			Famly API
//	@version		1.0
//	@description	User registration and login.
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(observability.LoggerOptions{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Service:     serviceName,
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	userRepo, closeStore := openUserStore(ctx, cfg, logger)
	defer closeStore()

	// Infrastructure services
	passwordHasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	var (
		tokenIssuer    authUC.TokenIssuer
		tokenValidator middleware.TokenValidator
	)
	if cfg.Auth.IssueTokens {
		jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
		tokenIssuer, tokenValidator = jwtSvc, jwtSvc
	}

	metrics := observability.NewMetrics()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, logger)
	}

	// Use cases
	authSvc := authUC.NewService(userRepo, passwordHasher, tokenIssuer)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, metrics)
	healthHandler := handler.NewHealthHandler(userRepo)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		HealthHandler:  healthHandler,
		AuthMiddleware: middleware.NewAuthMiddleware(tokenValidator, middleware.DefaultPolicy()),
		RateLimiter:    rateLimiter,
		Metrics:        metrics,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	logger.Info("service configured",
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("bcrypt_cost", passwordHasher.Cost()),
		zap.Bool("tokens", cfg.Auth.IssueTokens),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
	)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}

func openUserStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserRepository, func()) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory user store; data is lost on restart")
		return memory.NewUserRepo(), func() {}
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	return postgres.NewUserRepo(pool), pool.Close
}
