package api

import "github.com/gin-gonic/gin"

// DefaultAdminToken is used when ADMIN_TOKEN is unset — a value to
// override in any real deployment, never a recommendation.
const DefaultAdminToken = "changeme-admin-token"

// checkAdminAuth reports whether the request carries the configured admin
// token, via the X-Admin-Token header or a "token" query parameter.
func checkAdminAuth(c *gin.Context, configured string) bool {
	if configured == "" {
		configured = DefaultAdminToken
	}
	if got := c.GetHeader("X-Admin-Token"); got != "" {
		return got == configured
	}
	return c.Query("token") == configured
}
