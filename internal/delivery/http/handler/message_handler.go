package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/usecase/message"
)

type MessageHandler struct {
	messageUseCase *message.UseCase
	identity       identity.Provider
	log            *logger.Logger
}

func NewMessageHandler(messageUseCase *message.UseCase, identity identity.Provider, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
		identity:       identity,
		log:            log,
	}
}

type sendMessageRequest struct {
	SenderDeviceID    string `json:"senderDeviceId" binding:"required"`
	RecipientDeviceID string `json:"recipientDeviceId" binding:"required"`
	Content           string `json:"content" binding:"required"`
}

// SendMessage handles POST /messages.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	senderDeviceID, err := h.identity.Resolve(c.Request.Context(), req.SenderDeviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	msg, err := h.messageUseCase.Send(c.Request.Context(), senderDeviceID, req.RecipientDeviceID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversation handles GET /messages/conversation?deviceId1=&deviceId2=.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	deviceID1 := c.Query("deviceId1")
	deviceID2 := c.Query("deviceId2")
	if deviceID1 == "" || deviceID2 == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "deviceId1 and deviceId2 are required"})
		return
	}

	deviceID1, err := h.identity.Resolve(c.Request.Context(), deviceID1)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp, err := h.messageUseCase.Conversation(c.Request.Context(), deviceID1, deviceID2)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConversations handles GET /messages/conversations/:deviceId.
func (h *MessageHandler) GetConversations(c *gin.Context) {
	deviceID, err := h.identity.Resolve(c.Request.Context(), c.Param("deviceId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	summaries, err := h.messageUseCase.Conversations(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

type markReadRequest struct {
	DeviceID      string `json:"deviceId" binding:"required"`
	OtherDeviceID string `json:"otherDeviceId" binding:"required"`
}

// MarkRead handles POST /messages/read, marking everything the other
// party sent to the caller as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	deviceID, err := h.identity.Resolve(c.Request.Context(), req.DeviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	count, err := h.messageUseCase.MarkRead(c.Request.Context(), deviceID, req.OtherDeviceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
