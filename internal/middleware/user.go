package middleware

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// UserHeader names the acting user for the audit trail. There is no
// authentication; services record a missing user as "System".
const UserHeader = "X-User"

// MaxUserLength matches the audit_logs.user column width
const MaxUserLength = 255

const userKey = "acting_user"

// ActingUser normalizes the X-User header once per request
func ActingUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userKey, normalizeUser(c.GetHeader(UserHeader)))
		c.Next()
	}
}

// CurrentUser returns the acting user, reading the header directly when
// ActingUser is not installed.
func CurrentUser(c *gin.Context) string {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(string); ok {
			return user
		}
	}
	return normalizeUser(c.GetHeader(UserHeader))
}

func normalizeUser(raw string) string {
	user := strings.TrimSpace(raw)
	if utf8.RuneCountInString(user) <= MaxUserLength {
		return user
	}
	runes := []rune(user)
	return string(runes[:MaxUserLength])
}
