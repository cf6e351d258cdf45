package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"tvet-connect-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenBytes = 32
	csrfTokenTTL   = 24 * time.Hour
)

// Routes reached before a session cookie exists.
var csrfExemptPaths = map[string]bool{
	"/v1/auth/login":                 true,
	"/v1/auth/logout":                true,
	"/v1/auth/signup/individual":     true,
	"/v1/auth/signup/private-sector": true,
}

func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CSRF implements the double-submit cookie pattern for sessions carried by the
// auth_token cookie. Every response without a csrf_token cookie gets one; a
// mutating request authenticated only by cookie must echo it in X-CSRF-Token.
// Bearer-token clients never send the session cookie implicitly and are not checked.
func CSRF(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFCookieName)
		if err != nil || csrfCookie == "" {
			token, genErr := generateCSRFToken()
			if genErr != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			// HttpOnly=false so the frontend can read it back into the header
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, int(csrfTokenTTL.Seconds()), "/", "", isProduction, false)
		}

		if !requiresCSRF(c) {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}
		if csrfCookie == "" || subtle.ConstantTimeCompare([]byte(headerToken), []byte(csrfCookie)) != 1 {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func requiresCSRF(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	if csrfExemptPaths[c.Request.URL.Path] {
		return false
	}
	if strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
		return false
	}
	session, err := c.Cookie(authCookie)
	return err == nil && session != ""
}
