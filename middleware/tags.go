package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// requestTags names what a request touches: the route, the client, the
// intake draft and the signed-in staff member. Empty values are left out.
func requestTags(c *gin.Context) map[string]string {
	tags := map[string]string{"route": routeOf(c)}
	route := c.FullPath()
	switch {
	case strings.HasPrefix(route, "/api/clients/:id"):
		tags["client_id"] = c.Param("id")
	case strings.HasPrefix(route, "/api/intake/:id"):
		tags["intake_draft"] = c.Param("id")
	}
	if clientID := c.Query("clientId"); clientID != "" {
		tags["client_id"] = clientID
	}
	if staff := c.GetString("staffName"); staff != "" {
		tags["staff"] = staff
	}
	return tags
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
