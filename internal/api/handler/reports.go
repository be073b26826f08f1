package handler

import (
	"errors"
	"net/http"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type createReportRequest struct {
	TargetUserID string `json:"targetUserId"`
	BillboardID  string `json:"billboardId"`
	Severity     string `json:"severity" binding:"required,oneof=Low Medium Critical"`
	Reason       string `json:"reason" binding:"required"`
}

// CreateReport files a complaint against a user or one of their
// billboards and runs it through the moderation pipeline.
func (h *Handler) CreateReport(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetUserID := req.TargetUserID
	if req.BillboardID != "" {
		board, err := h.Storage.GetBillboardByID(req.BillboardID)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billboard"})
			return
		}
		targetUserID = board.OwnerID
	}
	if targetUserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A target user or billboard is required"})
		return
	}

	callerID := c.GetString("userID")
	if targetUserID == callerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot report yourself"})
		return
	}

	report := &models.Report{
		ReporterID:   callerID,
		TargetUserID: targetUserID,
		BillboardID:  req.BillboardID,
		Severity:     req.Severity,
		Reason:       req.Reason,
	}
	if err := h.Moderation.HandleReport(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file report"})
		return
	}

	h.alertNewReport(report)
	c.JSON(http.StatusOK, report)
}
