package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/services"
)

// APIKeyAuth защищает /api/:username/custom. Принимается либо ключ
// аккаунта, выданный при регистрации, либо активный именованный ключ
// этого же аккаунта.
func APIKeyAuth(accounts services.AccountService, keys services.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if username == "" || apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API key."})
			return
		}

		account, err := accounts.GetByUsername(username)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API key."})
			return
		}

		// сначала ключ по умолчанию, затем именованные ключи
		owner, err := accounts.GetByAPIKey(apiKey)
		if err != nil || owner == nil || owner.ID != account.ID {
			managed, err := keys.ResolveKey(apiKey)
			if err != nil || managed == nil || managed.AccountID != account.ID {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid API key."})
				return
			}
		}

		checkRateLimit(account.ID)

		c.Set("account", account)
		c.Set("account_id", account.ID)
		c.Next()
	}
}

// checkRateLimit - заглушка, лимиты пока не применяются.
func checkRateLimit(accountID int) {}
