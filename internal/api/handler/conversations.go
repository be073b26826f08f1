package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type createConversationRequest struct {
	BillboardID string `json:"billboardId" binding:"required"`
}

// CreateConversation opens (or returns) the advertiser's thread with the
// owner of an active billboard.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.Storage.GetBillboardByID(req.BillboardID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billboard"})
		return
	}
	if board.Status != models.BillboardStatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
		return
	}

	callerID := c.GetString("userID")
	if callerID == board.OwnerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open a conversation with yourself"})
		return
	}

	conv, err := h.Storage.GetOrCreateConversation(board.ID, board.OwnerID, callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}
	c.JSON(http.StatusOK, conv)
}

// GetMessages returns the thread history for a participant.
func (h *Handler) GetMessages(c *gin.Context) {
	conv, ok := h.loadConversationForCaller(c)
	if !ok {
		return
	}

	msgs, err := h.Storage.GetMessages(conv.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// SendMessage persists a message, notifies the counterpart and broadcasts
// the message event to the conversation room. The live broadcast is a
// best-effort nudge: an offline counterpart still has the persisted
// notification and message.
func (h *Handler) SendMessage(c *gin.Context) {
	conv, ok := h.loadConversationForCaller(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID := c.GetString("userID")
	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       callerID,
		Body:           req.Body,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	h.Notifier.Notify(conv.Counterpart(callerID), models.NotificationNewMessage, gin.H{
		"conversationId": conv.ID,
		"billboardId":    conv.BillboardID,
		"messageId":      msg.ID,
	})

	if body, err := json.Marshal(msg); err == nil {
		h.Storage.PublishEvent(models.DirectedEvent{
			RoomID: conv.ID,
			Event: models.Event{
				Type:           models.EventMessage,
				UserID:         callerID,
				ConversationID: conv.ID,
				Payload:        body,
			},
		})
	}

	c.JSON(http.StatusOK, msg)
}

// loadConversationForCaller loads the :id conversation and enforces that
// the caller is a participant. Writes the error response itself.
func (h *Handler) loadConversationForCaller(c *gin.Context) (*models.Conversation, bool) {
	conv, err := h.Storage.GetConversationByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return nil, false
	}
	if !conv.Participant(c.GetString("userID")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not a participant"})
		return nil, false
	}
	return conv, true
}
