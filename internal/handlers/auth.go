// Package handlers wires the service contracts to gin routes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"commandcenter/internal/models"
	"commandcenter/internal/services"
)

// AuthHandler handles login, password administration, and session listing.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// SetPassword creates or overwrites a credential. Callers that need to
// restrict who may do this must gate the route themselves.
func (h *AuthHandler) SetPassword(c *gin.Context) {
	var req models.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.authService.SetPassword(req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameRequired) || errors.Is(err, services.ErrPasswordRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// Sessions lists the active sessions after an expiry sweep.
func (h *AuthHandler) Sessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.ActiveSessions())
}
