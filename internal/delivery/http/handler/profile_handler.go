package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
	identity       identity.Provider
	log            *logger.Logger
}

func NewProfileHandler(profileUseCase *profile.UseCase, identity identity.Provider, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		identity:       identity,
		log:            log,
	}
}

// GetProfile handles GET /user/profile/:deviceId. A device that has never
// been seen before gets a starter profile created on the spot.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	deviceID, err := h.identity.Resolve(c.Request.Context(), c.Param("deviceId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	p, err := h.profileUseCase.GetOrCreate(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProfile handles PUT /user/profile/:deviceId with a full profile
// replacement. Saving a profile marks onboarding as complete.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	deviceID, err := h.identity.Resolve(c.Request.Context(), c.Param("deviceId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), deviceID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetDeviceID handles GET /profile/:profileId/deviceId, translating a
// stack candidate id back into the device id used for messaging.
func (h *ProfileHandler) GetDeviceID(c *gin.Context) {
	deviceID, err := h.profileUseCase.DeviceIDForProfile(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deviceId": deviceID})
}
