package handler

import (
	"errors"
	"net/http"
	"time"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListPendingBillboards is the administrator's moderation queue.
func (h *Handler) ListPendingBillboards(c *gin.Context) {
	boards, err := h.Storage.SearchBillboards(storage.BillboardFilter{
		Status: models.BillboardStatusPending,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending billboards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"billboards": boards})
}

// ApproveBillboard activates a pending listing, stamping the approval
// time and the approving administrator, and notifies the owner.
func (h *Handler) ApproveBillboard(c *gin.Context) {
	board, err := h.Storage.GetBillboardByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billboard"})
		return
	}

	now := time.Now()
	board.Status = models.BillboardStatusActive
	board.ApprovedAt = &now
	board.ApprovedBy = c.GetString("userID")
	board.RejectReason = ""
	if err := h.Storage.UpdateBillboard(board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billboard"})
		return
	}

	h.Notifier.Notify(board.OwnerID, models.NotificationBillboardApproved, gin.H{
		"billboardId": board.ID,
		"title":       board.Title,
	})
	c.JSON(http.StatusOK, board)
}

type rejectBillboardRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectBillboard declines a listing with a mandatory reason and notifies
// the owner.
func (h *Handler) RejectBillboard(c *gin.Context) {
	var req rejectBillboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}

	board, err := h.Storage.GetBillboardByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billboard"})
		return
	}

	board.Status = models.BillboardStatusRejected
	board.RejectReason = req.Reason
	board.ApprovedAt = nil
	board.ApprovedBy = ""
	if err := h.Storage.UpdateBillboard(board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update billboard"})
		return
	}

	h.Notifier.Notify(board.OwnerID, models.NotificationBillboardRejected, gin.H{
		"billboardId": board.ID,
		"title":       board.Title,
		"reason":      req.Reason,
	})
	c.JSON(http.StatusOK, board)
}

// SuspendUser marks an account suspended indefinitely and caches the
// fast-path flag so subsequent requests are rejected at the boundary.
func (h *Handler) SuspendUser(c *gin.Context) {
	user, err := h.Storage.GetUserByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	user.Suspended = true
	user.SuspendEndTime = 0
	user.LastSuspendDate = time.Now().Unix()
	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if err := h.Storage.CacheSuspension(user.ID, time.Time{}); err != nil {
		// The database is authoritative; the flag is repopulated on the
		// next moderation action if Redis was unavailable.
		c.JSON(http.StatusOK, user)
		return
	}

	h.Notifier.Notify(user.ID, models.NotificationAccountSuspended, gin.H{
		"userId": user.ID,
	})
	c.JSON(http.StatusOK, user)
}
