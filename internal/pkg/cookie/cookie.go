package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// AccessTokenQueryParam carries the token for WebSocket upgrades, which
	// browsers cannot send custom headers with.
	AccessTokenQueryParam = "token"
)

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// TokenFromRequest looks for the access token in the cookie, then the
// Authorization bearer header, then the query string when allowQuery is set.
func TokenFromRequest(c *gin.Context, allowQuery bool) string {
	if token := GetAccessToken(c); token != "" {
		return token
	}
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(authHeader[len("Bearer "):]); token != "" {
			return token
		}
	}
	if allowQuery {
		return c.Query(AccessTokenQueryParam)
	}
	return ""
}
