package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/drivent/hotel-booking/internal/models"
	"github.com/drivent/hotel-booking/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserContextKey is the key used to store user information in Gin context
const UserContextKey = "user"

// UserContext represents the authenticated user's information
type UserContext struct {
	UserID    int `json:"user_id"`
	SessionID int `json:"session_id"`
}

// SessionFinder looks up the session a token was issued for
type SessionFinder interface {
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}

// AuthMiddleware validates the bearer JWT and requires a matching session row
func AuthMiddleware(jwtService *jwt.Service, sessions SessionFinder, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		})

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("AUTH FAILED: Missing authorization header")
			abortUnauthorized(c, "unauthorized", "Authorization header is required", "MISSING_AUTH_HEADER")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("AUTH FAILED: Invalid auth format")
			abortUnauthorized(c, "unauthorized", "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			log.Warn("AUTH FAILED: Empty token")
			abortUnauthorized(c, "unauthorized", "Token cannot be empty", "INVALID_AUTH_FORMAT")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if jwt.IsTokenExpired(err) {
				log.WithError(err).Warn("AUTH FAILED: Token expired")
				abortUnauthorized(c, "token_expired", "Access token has expired", "TOKEN_EXPIRED")
				return
			}
			log.WithError(err).Warn("AUTH FAILED: Invalid token")
			abortUnauthorized(c, "invalid_token", "Invalid access token", "INVALID_TOKEN")
			return
		}

		session, err := sessions.FindByToken(c.Request.Context(), tokenString)
		if err != nil {
			log.WithError(err).Error("AUTH FAILED: Session lookup failed")
			abortUnauthorized(c, "unauthorized", "Unable to verify session", "SESSION_LOOKUP_FAILED")
			return
		}
		if session == nil || session.UserID != claims.UserID {
			log.WithField("user_id", claims.UserID).Warn("AUTH FAILED: No session for token")
			abortUnauthorized(c, "unauthorized", "Session not found", "SESSION_NOT_FOUND")
			return
		}

		c.Set(UserContextKey, UserContext{
			UserID:    claims.UserID,
			SessionID: session.ID,
		})
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// GetUserContext retrieves user context from Gin context
func GetUserContext(c *gin.Context) (*UserContext, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}

	userCtx, ok := value.(UserContext)
	if !ok {
		return nil, false
	}

	return &userCtx, true
}

func abortUnauthorized(c *gin.Context, errorType, message, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   errorType,
		"message": message,
		"code":    code,
	})
}
