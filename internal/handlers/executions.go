package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"commandcenter/internal/services"
)

// historyLimit is how much of the ring the HTTP surface exposes per call.
const historyLimit = 100

// ExecutionHandler serves the execution history.
type ExecutionHandler struct {
	executor *services.ExecutorService
}

func NewExecutionHandler(executor *services.ExecutorService) *ExecutionHandler {
	return &ExecutionHandler{executor: executor}
}

// History returns the most recent executions, newest first. An optional
// `limit` query parameter truncates the slice further.
func (h *ExecutionHandler) History(c *gin.Context) {
	limit := historyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, h.executor.History(limit))
}
