package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labelscore/backend/internal/domain"
	"github.com/labelscore/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scoring *usecase.ProductScoringService
	catalog domain.CatalogRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(scoring *usecase.ProductScoringService, catalog domain.CatalogRepository) *Handler {
	return &Handler{
		scoring: scoring,
		catalog: catalog,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         "labelscore-backend",
		"catalogProducts": h.catalog.Size(),
	})
}

// ScoreProduct scores a raw product payload supplied by the client.
func (h *Handler) ScoreProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload: " + err.Error()})
		return
	}

	result, err := h.scoring.ScoreProduct(c.Request.Context(), &product)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScoreBarcode scores a catalog product by barcode.
func (h *Handler) ScoreBarcode(c *gin.Context) {
	barcode := c.Param("barcode")

	result, err := h.scoring.ScoreBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
