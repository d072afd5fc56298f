package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/services"
)

// AuthMiddleware проверяет bearer-токен и кладёт аккаунт в контекст.
// Любой сбой по цепочке (заголовок, подпись, срок, отзыв, удалённый
// аккаунт) даёт одинаковый 401.
func AuthMiddleware(auth services.AuthService, accounts services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// пропускаем preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// токен переживает удаление аккаунта; subject обязан существовать
		account, err := accounts.GetByUsername(claims.Subject)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("account", account)
		c.Set("account_id", account.ID)
		c.Next()
	}
}
