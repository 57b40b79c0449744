package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/marcos-nsantos/famly-backend/docs"
	"github.com/marcos-nsantos/famly-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/famly-backend/internal/infrastructure/observability"
)

const EnvironmentProduction = "production"

type Router struct {
	engine         *gin.Engine
	authHandler    *handler.AuthHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	metrics        *observability.Metrics
	logger         *zap.Logger
	environment    string
}

// RouterConfig wires the HTTP surface. RateLimiter and Metrics are optional.
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == EnvironmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Router{
		engine:         gin.New(),
		authHandler:    cfg.AuthHandler,
		healthHandler:  cfg.HealthHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		metrics:        cfg.Metrics,
		logger:         logger,
		environment:    cfg.Environment,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	r.engine.Use(middleware.CORS())
	r.engine.Use(r.authMiddleware.Authorize())
}

func (r *Router) setupRoutes() {
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	if r.environment != EnvironmentProduction {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")
	{
		api.GET("/health", r.healthHandler.Health)

		auth := api.Group("/auth")
		if r.rateLimiter != nil {
			auth.Use(r.rateLimiter.Limit())
		}
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authHandler.Me)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
