package handler

import (
	"context"
	"net/http"
	"time"

	"heritage-check-api/internal/models"
	"heritage-check-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckHandler handles property status check submissions
type CheckHandler struct {
	service PropertyChecker
}

// PropertyChecker interface for dependency injection
type PropertyChecker interface {
	Check(ctx context.Context, req models.CheckRequest, meta service.ClientMeta) (*models.PropertyCheckResult, error)
}

// NewCheckHandler creates a new property check handler
func NewCheckHandler(svc PropertyChecker) *CheckHandler {
	return &CheckHandler{service: svc}
}

// Check handles POST /api/v1/property-check requests
func (h *CheckHandler) Check(c *gin.Context) {
	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "request body must be valid JSON",
			ErrorCode: models.CodeValidationError,
		})
		return
	}

	meta := service.ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.service.Check(c.Request.Context(), req, meta)
	if err != nil {
		respondError(c, err)
		return
	}

	// Results are per-client, never CDN-cacheable.
	c.Header("Cache-Control", "private")
	c.JSON(http.StatusOK, models.CheckResponse{
		Success:   true,
		Data:      *result,
		Timestamp: time.Now().UTC(),
	})
}
