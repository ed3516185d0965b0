package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/errors"
	"github.com/ejoh/storefront-backend/pkg/util"
)

// Context keys for session information
const (
	SessionIDKey    = "session_id"
	SessionEmailKey = "session_email"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the bearer token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		// Try the Authorization header first
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Malformed authorization header")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			// Fall back to the query parameter (for WebSocket handshakes)
			token = c.Query("token")
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.Unauthorized(c, "Authentication required")
				c.Abort()
				return
			}
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Your session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(SessionIDKey, claims.SessionID)
		c.Set(SessionEmailKey, claims.Email)

		log.Debug("Session authenticated", map[string]interface{}{
			"session_id": claims.SessionID,
			"email":      claims.Email,
		})

		c.Next()
	}
}

// GetSessionID extracts the session id from context
func GetSessionID(c *gin.Context) (int64, bool) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return 0, false
	}
	return sessionID.(int64), true
}

// GetSessionEmail extracts the session email from context
func GetSessionEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(SessionEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
