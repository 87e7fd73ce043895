package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logbookocr/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	svc service.ExtractionService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc service.ExtractionService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "extraction service not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": h.svc.Provider()})
}
