package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const authCookie = "auth_token"

// AuthMiddleware requires a valid session token and loads the caller from the database,
// so the role and approval used downstream are never taken from a stale token.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		if !authenticate(c, authUC, tokenString) {
			return
		}
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token.
func OptionalAuth(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		if !authenticate(c, authUC, tokenString) {
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller has one of roles.
func RequireRole(secLog *security.Logger, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(string(domain.KeyUserRole))
		roleStr, _ := role.(string)
		for _, r := range roles {
			if roleStr == string(r) {
				c.Next()
				return
			}
		}

		userID, _ := c.Get(string(domain.KeyUserID))
		userIDStr, _ := userID.(string)
		secLog.AccessDenied(c.Request.Context(), userIDStr, c.FullPath(), response.RequestID(c))

		response.Error(c, http.StatusForbidden, "You do not have permission to access this resource", nil)
		c.Abort()
	}
}

func extractToken(c *gin.Context) string {
	// 1. Try to get token from Header
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
		return ""
	}
	// 2. Try to get token from Cookie
	if cookie, err := c.Cookie(authCookie); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, authUC domain.AuthUsecase, tokenString string) bool {
	user, err := authUC.Authenticate(c.Request.Context(), tokenString)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message, nil)
		} else {
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
		c.Abort()
		return false
	}

	c.Set(string(domain.KeyUserID), user.ID)
	c.Set(string(domain.KeyUserRole), string(user.Role))

	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, user.ID)
	ctx = context.WithValue(ctx, domain.KeyUserRole, string(user.Role))
	c.Request = c.Request.WithContext(ctx)
	return true
}
