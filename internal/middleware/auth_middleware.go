package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/pkg/util"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates JWT token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, model.UserRole(claims.Role))

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user has one of the
// given roles. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		roleValue, exists := c.Get(UserRoleKey)
		if !exists {
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userRole, ok := roleValue.(model.UserRole)
		if !ok {
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if string(userRole) == role {
				c.Next()
				return
			}
		}

		log.Warn("Access denied: insufficient role", map[string]interface{}{
			"path": c.Request.URL.Path,
			"role": userRole,
		})
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Access denied")
		c.Abort()
	}
}

// GetUserID retrieves the authenticated user ID from the gin context.
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetUserEmail retrieves the authenticated user email from the gin context.
func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

// GetUserRole retrieves the authenticated user role from the gin context.
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	value, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(model.UserRole)
	return role, ok
}
