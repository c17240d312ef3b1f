package middleware

import (
	"errors"
	"net/http"
	"strings"

	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"
	"skillmatch-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates access tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func setIdentity(c *gin.Context, user *domain.User) {
	c.Set(string(domain.KeyUserID), user.ID)
	c.Set(string(domain.KeyUserEmail), user.Email)
	c.Set(string(domain.KeyUserRole), user.Role)
}

// RequireAuth rejects requests without a valid token for an existing user
func RequireAuth(verifier TokenVerifier, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		// role comes from the database, not the token
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.Subject)
		if err != nil {
			if apperror.HasCode(err, http.StatusNotFound) {
				response.Error(c, http.StatusUnauthorized, "User not found", nil)
			} else {
				// storage failures are rendered as 5xx by ErrorHandler
				c.Error(err)
			}
			c.Abort()
			return
		}

		setIdentity(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise continues anonymously.
func OptionalAuth(verifier TokenVerifier, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			c.Next()
			return
		}
		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.Subject)
		switch {
		case err == nil:
			setIdentity(c, user)
		case !apperror.HasCode(err, http.StatusNotFound):
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or "" for anonymous requests
func UserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
