package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tubetweet-server/internal/utils/platformerrors"
)

const (
	// AccessTokenCookie is the cookie carrying the access JWT.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie is the cookie carrying the refresh JWT.
	RefreshTokenCookie = "refreshToken"

	userIDKey = "userID"
)

// AccessVerifier validates an access token and returns the subject user id.
type AccessVerifier interface {
	VerifyAccess(token string) (string, error)
}

// RequireAuth rejects requests without a valid access token. The token is read
// from the accessToken cookie, falling back to an Authorization bearer header.
func RequireAuth(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "missing access token", "c1a2b3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
			return
		}

		userID, err := verifier.VerifyAccess(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired access token", "d2b3c4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the viewer's identity when a valid token is present
// but never rejects the request. Public listings use it to personalize
// engagement flags.
func OptionalAuth(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if userID, err := verifier.VerifyAccess(token); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or "" when anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message, uuid string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute,
		platformerrors.ErrorTypeUnauthorized, message, nil, uuid)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statuscode": http.StatusUnauthorized,
		"data":       nil,
		"message":    err.Message,
		"success":    false,
	})
}
