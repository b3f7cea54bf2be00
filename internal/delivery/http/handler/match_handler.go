package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
	identity     identity.Provider
	log          *logger.Logger
}

func NewMatchHandler(matchUseCase *match.UseCase, identity identity.Provider, log *logger.Logger) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
		identity:     identity,
		log:          log,
	}
}

// GetMatches handles GET /matches/:deviceId.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	deviceID, err := h.identity.Resolve(c.Request.Context(), c.Param("deviceId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	views, err := h.matchUseCase.ListForDevice(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": views})
}
