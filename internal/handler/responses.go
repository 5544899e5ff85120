package handler

import (
	"errors"
	"net/http"

	"heritage-check-api/internal/models"
	"heritage-check-api/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to the external one. This is
// the only place internal errors become HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     err.Error(),
			ErrorCode: models.CodeValidationError,
		})
	case errors.Is(err, service.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "address could not be resolved",
			ErrorCode: models.CodeGeocodingFailed,
		})
	case errors.Is(err, service.ErrOutsideCoverage):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "location is outside the supported coverage area",
			ErrorCode: models.CodeNotInCoverageArea,
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "internal server error",
			ErrorCode: models.CodeServerError,
		})
	}
}
