package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/admin-backend/internal/middleware"
	"github.com/careerpath/admin-backend/internal/response"
)

// AuthHandler handles the admin session endpoints. Sign-in itself happens
// against the identity provider in the browser.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login godoc
// POST /api/admin/login
// Acknowledges an admin login. Tokens are issued by the identity provider.
func (h *AuthHandler) Login(c *gin.Context) {
	response.Success(c, http.StatusOK, response.Message{Message: "Admin login successful"})
}

// Me godoc
// GET /api/admin/me
// Returns the profile of the authenticated admin.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"user": middleware.GetAdmin(c)})
}
