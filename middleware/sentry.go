package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Headers that carry staff credentials.
var credentialHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// SentryMiddleware traces each request on its own hub, tagged with the
// client, intake draft and staff member it concerns. It is a no-op until
// Sentry has been initialised.
func SentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		parent := sentry.CurrentHub()
		if parent == nil || parent.Client() == nil {
			c.Next()
			return
		}
		hub := parent.Clone()
		ctx := sentry.SetHubOnContext(c.Request.Context(), hub)

		transaction := sentry.StartTransaction(ctx, c.Request.Method+" "+routeOf(c),
			sentry.ContinueFromRequest(c.Request))
		hub.Scope().SetRequest(redacted(c.Request))

		c.Request = c.Request.WithContext(transaction.Context())
		c.Next()

		// Tags are read after the handlers so the staff name set by auth is
		// included.
		for k, v := range requestTags(c) {
			transaction.SetTag(k, v)
			hub.Scope().SetTag(k, v)
		}
		transaction.Status = sentry.HTTPtoSpanStatus(c.Writer.Status())
		transaction.Finish()
	}
}

// redacted copies r with credential headers masked.
func redacted(r *http.Request) *http.Request {
	out := r.Clone(r.Context())
	for name := range out.Header {
		if credentialHeaders[http.CanonicalHeaderKey(name)] {
			out.Header.Set(name, "[FILTERED]")
		}
	}
	return out
}
