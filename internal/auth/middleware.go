package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/models"
)

const identityKey = "identity"

// RequireAdmin resolves the session cookie into an identity and
// rejects anyone off the allow-list. Handlers behind it can assume
// IdentityFrom succeeds.
func RequireAdmin(sessions *Sessions, allow *Allowlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			c.Abort()
			return
		}

		identity, err := sessions.Verify(cookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		if !allow.IsAdmin(identity.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by RequireAdmin
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
