package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ojamarket/backend/internal/api/dto"
	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/models"
)

const authUserKey = "auth_user"

// ==============================================
// AUTHENTICATION GUARD
// ==============================================

// RequireAuth verifies the bearer access token and attaches {id, role} to
// the request context for downstream handlers and role checks
func RequireAuth(codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Access token is required")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			abortUnauthorized(c, "Access token is required")
			return
		}

		claims, err := codec.VerifyAccessToken(token)
		if err != nil {
			if errors.Is(err, models.ErrTokenExpired) {
				abortUnauthorized(c, "Access token expired")
				return
			}
			abortUnauthorized(c, "Invalid access token")
			return
		}

		c.Set(authUserKey, &models.AuthUser{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// GetAuthUser returns the identity the guard attached, or nil
func GetAuthUser(c *gin.Context) *models.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*models.AuthUser); ok {
			return user
		}
	}
	return nil
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewAPIResponse(http.StatusForbidden, nil,
					"Access denied. Required role: "+strings.Join(roles, " or ")))
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewAPIResponse(http.StatusUnauthorized, nil, message))
}

// ==============================================
// CORS
// ==============================================

// CORSMiddleware allows listed origins; requests with no Origin header
// (curl, mobile clients) pass through untouched
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			originSet[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originSet[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
