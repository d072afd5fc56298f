package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
)

// currentAccount достаёт аккаунт, положенный в контекст middleware.
func currentAccount(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get("account")
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok && account != nil
}

// mustAccount: 401, если middleware не положил аккаунт.
func mustAccount(c *gin.Context) (*models.Account, bool) {
	account, ok := currentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return account, ok
}
