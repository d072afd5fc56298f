package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
	"ayvcodr/internal/services"
)

type AccountHandler struct {
	accountService   services.AccountService
	dashboardService services.DashboardService
}

func NewAccountHandler(accountService services.AccountService, dashboardService services.DashboardService) *AccountHandler {
	return &AccountHandler{accountService: accountService, dashboardService: dashboardService}
}

// @Summary      Профиль текущего аккаунта
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": account.Username,
		"email":    account.Email,
	})
}

// @Summary      Обновление профиля
// @Description  Меняет username/email с проверкой занятости
// @Tags         Account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.UpdateProfile(account, req.Username, req.Email); err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already taken"})
			return
		}
		log.Printf("[account][update-profile] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": account.Username,
		"email":    account.Email,
	})
}

// @Summary      Смена пароля
// @Tags         Account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /change-password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var req models.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.ChangePassword(account, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
			return
		}
		log.Printf("[account][change-password] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password updated successfully"})
}

// @Summary      Удаление аккаунта
// @Description  Жёсткое удаление, без tombstone; токены перестают работать
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /delete-account [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(account); err != nil {
		log.Printf("[account][delete] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Account deleted successfully"})
}

// @Summary      Список аккаунтов
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.AccountOut
// @Router       /users [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	accounts, err := h.accountService.ListAccounts(limit, offset)
	if err != nil {
		log.Printf("[account][list] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	out := make([]models.AccountOut, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Out())
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Аккаунт по id
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.AccountOut
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	account, err := h.accountService.GetByID(id)
	if err != nil || account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, account.Out())
}

// @Summary      Статистика вызовов текущего аккаунта
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /usage/me [get]
func (h *AccountHandler) GetMyUsage(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	count, err := h.dashboardService.GetUsageFor(account.ID)
	if err != nil {
		log.Printf("[account][usage] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": account.Username, "usage_count": count})
}

// @Summary      Статистика вызовов по всем аккаунтам
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /usage/all [get]
func (h *AccountHandler) GetAllUsage(c *gin.Context) {
	usage, err := h.dashboardService.GetUsageByUsername()
	if err != nil {
		log.Printf("[account][usage-all] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get usage"})
		return
	}
	c.JSON(http.StatusOK, usage)
}
