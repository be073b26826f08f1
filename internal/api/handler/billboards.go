package handler

import (
	"errors"
	"net/http"

	"billboardgo/backend/internal/models"
	"billboardgo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ListBillboards is the public search endpoint. Only active listings are
// visible; pending and rejected ones never leak into search results.
func (h *Handler) ListBillboards(c *gin.Context) {
	filter := storage.BillboardFilter{
		Status: models.BillboardStatusActive,
		City:   c.Query("city"),
	}

	boards, err := h.Storage.SearchBillboards(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search billboards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"billboards": boards})
}

// GetBillboard returns one listing. A listing that is not active is only
// shown to its owner or an administrator.
func (h *Handler) GetBillboard(c *gin.Context) {
	board, err := h.Storage.GetBillboardByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load billboard"})
		return
	}

	if board.Status != models.BillboardStatusActive {
		// The route is public, so resolve the caller from the token if one
		// was presented. Only the owner and administrators see non-active
		// listings; everyone else gets the same 404 as a missing ID.
		callerID, role := h.optionalIdentity(c)
		if callerID != board.OwnerID && role != models.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Billboard not found"})
			return
		}
	}
	c.JSON(http.StatusOK, board)
}

type createBillboardRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	City           string   `json:"city" binding:"required"`
	Address        string   `json:"address"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	DailyRateCents int64    `json:"dailyRateCents" binding:"required,min=1"`
	SizeSpec       string   `json:"sizeSpec"`
	Digital        bool     `json:"digital"`
	PhotoURLs      []string `json:"photoUrls"`
}

// CreateBillboard lists a new advertising space. The listing starts in
// the pending state and goes through moderation before it becomes
// searchable.
func (h *Handler) CreateBillboard(c *gin.Context) {
	var req createBillboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board := &models.Billboard{
		OwnerID:        c.GetString("userID"),
		Title:          req.Title,
		Description:    req.Description,
		City:           req.City,
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		DailyRateCents: req.DailyRateCents,
		SizeSpec:       req.SizeSpec,
		Digital:        req.Digital,
		PhotoURLs:      pq.StringArray(req.PhotoURLs),
		Status:         models.BillboardStatusPending,
	}
	if err := h.Storage.CreateBillboard(board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create billboard"})
		return
	}

	h.alertNewListing(board)
	c.JSON(http.StatusOK, board)
}
