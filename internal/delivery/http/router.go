package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/climblink/backend/internal/delivery/http/handler"
	"github.com/climblink/backend/internal/delivery/http/middleware"
	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
)

type Router struct {
	stackHandler   *handler.StackHandler
	swipeHandler   *handler.SwipeHandler
	profileHandler *handler.ProfileHandler
	messageHandler *handler.MessageHandler
	matchHandler   *handler.MatchHandler
	redisClient    *redis.Client
	rateLimit      int
	rateWindow     time.Duration
	log            *logger.Logger
}

func NewRouter(
	stackHandler *handler.StackHandler,
	swipeHandler *handler.SwipeHandler,
	profileHandler *handler.ProfileHandler,
	messageHandler *handler.MessageHandler,
	matchHandler *handler.MatchHandler,
	redisClient *redis.Client,
	rateLimit int,
	rateWindow time.Duration,
	log *logger.Logger,
) *Router {
	return &Router{
		stackHandler:   stackHandler,
		swipeHandler:   swipeHandler,
		profileHandler: profileHandler,
		messageHandler: messageHandler,
		matchHandler:   matchHandler,
		redisClient:    redisClient,
		rateLimit:      rateLimit,
		rateWindow:     rateWindow,
		log:            log,
	}
}

// RegisterValidators installs the enum validators used by request
// binding tags. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("swipeaction", func(fl validator.FieldLevel) bool {
		return domain.SwipeAction(fl.Field().String()).Valid()
	})
	v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return domain.Gender(fl.Field().String()).Valid()
	})
	v.RegisterValidation("genderpref", func(fl validator.FieldLevel) bool {
		return domain.GenderPreference(fl.Field().String()).Valid()
	})
}

// Setup wires the route table. Paths match what the mobile client has
// shipped with, so there is no version prefix.
func (r *Router) Setup() *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(r.log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(r.redisClient, r.rateLimit, r.rateWindow, r.log))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/getStack", r.stackHandler.GetStack)

	router.POST("/swipes", r.swipeHandler.RecordSwipe)

	profile := router.Group("")
	{
		profile.GET("/user/profile/:deviceId", r.profileHandler.GetProfile)
		profile.PUT("/user/profile/:deviceId", r.profileHandler.UpdateProfile)
		profile.GET("/profile/:profileId/deviceId", r.profileHandler.GetDeviceID)
	}

	messages := router.Group("/messages")
	{
		messages.POST("", r.messageHandler.SendMessage)
		messages.GET("/conversation", r.messageHandler.GetConversation)
		messages.GET("/conversations/:deviceId", r.messageHandler.GetConversations)
		messages.POST("/read", r.messageHandler.MarkRead)
	}

	router.GET("/matches/:deviceId", r.matchHandler.GetMatches)

	return router
}
