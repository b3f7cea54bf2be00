package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.UseCase
	identity     identity.Provider
	log          *logger.Logger
}

func NewSwipeHandler(swipeUseCase *swipe.UseCase, identity identity.Provider, log *logger.Logger) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
		identity:     identity,
		log:          log,
	}
}

type recordSwipeRequest struct {
	SwiperDeviceID  string `json:"swiperDeviceId" binding:"required"`
	SwipedProfileID string `json:"swipedProfileId" binding:"required"`
	Action          string `json:"action" binding:"required,swipeaction"`
}

// RecordSwipe handles POST /swipes.
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	var req recordSwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	deviceID, err := h.identity.Resolve(c.Request.Context(), req.SwiperDeviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp, err := h.swipeUseCase.Record(c.Request.Context(), deviceID, req.SwipedProfileID, domain.SwipeAction(req.Action))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
