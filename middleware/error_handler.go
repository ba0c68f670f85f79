package middleware

import (
	"salon-wellness-backend/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ErrorHandler reports errors handlers attached with c.Error, tagged with the
// client, intake draft and staff member of the request.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		extras := map[string]interface{}{
			"method": c.Request.Method,
			"status": c.Writer.Status(),
		}
		for k, v := range requestTags(c) {
			extras[k] = v
		}
		hub := sentry.GetHubFromContext(c.Request.Context())
		if hub == nil {
			hub = sentry.CurrentHub()
		}
		for _, ginErr := range c.Errors {
			utils.CaptureErrorOn(hub, ginErr.Err, extras)
		}
	}
}
