package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"commandcenter/internal/middleware"
	"commandcenter/internal/models"
	"commandcenter/internal/services"
)

// CommandHandler handles registry CRUD and execution requests.
type CommandHandler struct {
	registry *services.RegistryService
	executor *services.ExecutorService
}

func NewCommandHandler(registry *services.RegistryService, executor *services.ExecutorService) *CommandHandler {
	return &CommandHandler{registry: registry, executor: executor}
}

// List returns all commands ordered by name.
func (h *CommandHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

// Save creates or updates a command depending on whether the body carries a
// known id.
func (h *CommandHandler) Save(c *gin.Context) {
	var mutation models.CommandMutation
	if err := c.ShouldBindJSON(&mutation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd, err := h.registry.Save(mutation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, cmd)
}

// Delete removes a command by id.
func (h *CommandHandler) Delete(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "command deleted"})
}

// Execute starts an asynchronous execution and returns the Pending snapshot.
// Later transitions are observable on the event stream or through history.
func (h *CommandHandler) Execute(c *gin.Context) {
	// An empty body is a plain "run with the stored defaults" request.
	var req models.ExecuteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	requestedBy := "operator"
	if value, exists := c.Get(middleware.SessionContextKey); exists {
		if session, ok := value.(models.Session); ok {
			requestedBy = session.Username
		}
	}

	record, err := h.executor.Execute(c.Param("id"), req.Parameters, requestedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCommandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrArgumentsNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, record)
}
