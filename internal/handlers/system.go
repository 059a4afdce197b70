package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commandcenter/internal/services"
	"commandcenter/internal/version"
)

// SystemHandler serves health and host snapshot endpoints.
type SystemHandler struct {
	systemService *services.SystemService
}

func NewSystemHandler(systemService *services.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Health is the public liveness endpoint.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   version.Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Snapshot reports host resource usage.
func (h *SystemHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.systemService.Snapshot(c.Request.Context()))
}
