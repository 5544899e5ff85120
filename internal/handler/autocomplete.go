package handler

import (
	"context"
	"net/http"
	"strconv"

	"heritage-check-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AutocompleteHandler handles address suggestion requests
type AutocompleteHandler struct {
	service Suggester
}

// Suggester interface for dependency injection
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]models.GeocodingCandidate, error)
}

// NewAutocompleteHandler creates a new autocomplete handler
func NewAutocompleteHandler(svc Suggester) *AutocompleteHandler {
	return &AutocompleteHandler{service: svc}
}

// Autocomplete handles GET /api/v1/autocomplete requests
func (h *AutocompleteHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "missing required query parameter 'q'",
			ErrorCode: models.CodeValidationError,
		})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "limit must be an integer",
				ErrorCode: models.CodeValidationError,
			})
			return
		}
		limit = parsed
	}

	candidates, err := h.service.Suggest(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	// Provider results for a fixed query are stable; let CDNs hold them for a day.
	c.Header("Cache-Control", "public, max-age=86400")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    candidates,
	})
}
