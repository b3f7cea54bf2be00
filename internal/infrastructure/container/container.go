package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/climblink/backend/internal/config"
	"github.com/climblink/backend/internal/delivery/http"
	"github.com/climblink/backend/internal/delivery/http/handler"
	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/infrastructure/database"
	"github.com/climblink/backend/internal/infrastructure/server"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository/postgres"
	"github.com/climblink/backend/internal/usecase/match"
	"github.com/climblink/backend/internal/usecase/message"
	"github.com/climblink/backend/internal/usecase/profile"
	"github.com/climblink/backend/internal/usecase/stack"
	"github.com/climblink/backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis backs rate limiting only, so a missing instance is not fatal.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, rate limiting disabled", "error", err)
			redisClient = nil
		}
	}

	// Initialize identity provider
	identityProvider, err := identity.FromConfig(&cfg.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Initialize use cases
	stackUseCase := stack.NewUseCase(profileRepo, swipeRepo, log)
	swipeUseCase := swipe.NewUseCase(swipeRepo, profileRepo, log)
	profileUseCase := profile.NewUseCase(profileRepo, log)
	messageUseCase := message.NewUseCase(messageRepo, profileRepo, log)
	matchUseCase := match.NewUseCase(matchRepo, profileRepo, log)

	// Initialize handlers
	stackHandler := handler.NewStackHandler(stackUseCase, identityProvider, log)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase, identityProvider, log)
	profileHandler := handler.NewProfileHandler(profileUseCase, identityProvider, log)
	messageHandler := handler.NewMessageHandler(messageUseCase, identityProvider, log)
	matchHandler := handler.NewMatchHandler(matchUseCase, identityProvider, log)

	// Initialize router
	router := http.NewRouter(
		stackHandler,
		swipeHandler,
		profileHandler,
		messageHandler,
		matchHandler,
		redisClient,
		cfg.RateLimit.Requests,
		cfg.RateLimit.Window,
		log,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
