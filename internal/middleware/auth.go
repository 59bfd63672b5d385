package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/response"
	"github.com/careerpath/admin-backend/internal/service"
)

const (
	// ContextKeyIdentity is the Gin context key for the verified token identity.
	ContextKeyIdentity = "identity"
	// ContextKeyAdmin is the Gin context key for the authorized admin profile.
	ContextKeyAdmin = "admin"
)

// Authenticate verifies the bearer token and stores the identity on the
// context. WebSocket upgrades may pass the token as ?token= instead.
func Authenticate(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authService.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			code := response.ErrTokenInvalid
			switch {
			case errors.Is(err, apperrors.ErrTokenRequired):
				code = response.ErrTokenRequired
			case errors.Is(err, apperrors.ErrTokenExpired):
				code = response.ErrTokenExpired
			}
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("Token rejected")
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}

		ctx := events.WithActor(c.Request.Context(), identity.UID)
		log := zerolog.Ctx(ctx).With().Str("uid", identity.UID).Logger()
		c.Request = c.Request.WithContext(log.WithContext(ctx))

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireAdmin loads the caller's profile and requires the admin role.
// It must run after Authenticate.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		user, err := authService.AuthorizeAdmin(c.Request.Context(), identity.UID)
		switch {
		case err == nil:
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.AbortFail(c, http.StatusNotFound, response.ErrAccountNotFound)
			return
		case errors.Is(err, apperrors.ErrAdminOnly):
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to load admin profile")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyAdmin, user)
		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the Gin context.
func GetIdentity(c *gin.Context) *service.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, _ := val.(*service.Identity)
	return identity
}

// GetAdmin retrieves the authorized admin profile from the Gin context.
func GetAdmin(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyAdmin)
	if !exists {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	// Browsers cannot set headers on a WebSocket handshake.
	if isWebSocketUpgrade(c) {
		return c.Query("token")
	}
	return ""
}

func isWebSocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}
