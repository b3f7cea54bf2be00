package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/usecase/stack"
)

type StackHandler struct {
	stackUseCase *stack.UseCase
	identity     identity.Provider
	log          *logger.Logger
}

func NewStackHandler(stackUseCase *stack.UseCase, identity identity.Provider, log *logger.Logger) *StackHandler {
	return &StackHandler{
		stackUseCase: stackUseCase,
		identity:     identity,
		log:          log,
	}
}

// GetStack handles GET /getStack?deviceId=<token>. The deviceId is
// optional; an anonymous request gets the default stack.
func (h *StackHandler) GetStack(c *gin.Context) {
	var deviceID string
	if presented := c.Query("deviceId"); presented != "" {
		var err error
		deviceID, err = h.identity.Resolve(c.Request.Context(), presented)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	views, err := h.stackUseCase.ComputeStack(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stack": views,
		"count": len(views),
	})
}
