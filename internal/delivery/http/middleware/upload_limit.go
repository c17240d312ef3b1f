package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/pkg/logger"
	"skillmatch-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// UploadLimitMiddleware applies the résumé upload quotas. It must run after
// RequireAuth so the per-user quota applies.
func UploadLimitMiddleware(limiter *security.UploadLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP(), UserID(c))
		if err != nil {
			if errors.Is(err, security.ErrLimiterUnavailable) {
				logger.Log.Debug("Upload limiter unavailable, allowing request")
			} else {
				logger.Log.Error("Upload limiter failed", "error", err)
			}
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusTooManyRequests, "Upload limit reached. Please try again later.", nil)
			c.Abort()
			return
		}
		if ipLeft, userLeft, err := limiter.Remaining(c.Request.Context(), c.ClientIP(), UserID(c)); err == nil {
			c.Header("X-Upload-Remaining-Minute", strconv.Itoa(ipLeft))
			c.Header("X-Upload-Remaining-Day", strconv.Itoa(userLeft))
		}
		c.Next()
	}
}
