package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"zipcode-api/internal/models"
	"zipcode-api/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles lookup history requests
type HistoryHandler struct {
	service HistoryService
}

// HistoryService interface for dependency injection
type HistoryService interface {
	History(ctx context.Context, zipcode string, limit int) ([]models.LookupRecord, error)
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(svc HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// History handles GET /history requests
func (h *HistoryHandler) History(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit format"})
			return
		}
	}

	records, err := h.service.History(c.Request.Context(), c.Query("zipcode"), limit)
	if errors.Is(err, service.ErrHistoryDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup history is disabled"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}
