package handler

import (
	"errors"
	"net/http"

	"billboardgo/backend/internal/push"

	"github.com/gin-gonic/gin"
)

// UnreadCount answers how many unread notifications the authenticated
// caller has. The count is always scoped to the caller's own identifier.
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.Storage.CountUnreadNotifications(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationsRead marks all of the caller's notifications read.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	if err := h.Storage.MarkNotificationsRead(c.GetString("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PushPublicKey returns the web-push public key clients need to
// subscribe, or an error when no key pair is configured.
func (h *Handler) PushPublicKey(c *gin.Context) {
	key, err := h.Push.PublicKey()
	if errors.Is(err, push.ErrNotConfigured) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Push notifications not configured"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load push key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": key})
}
