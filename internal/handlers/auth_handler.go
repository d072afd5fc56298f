package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
	"ayvcodr/internal/services"
)

type AuthHandler struct {
	accountService services.AccountService
}

func NewAuthHandler(accountService services.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

// @Summary      Регистрация аккаунта
// @Description  Создаёт аккаунт, выдаёт api_key и токен доступа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Данные регистрации"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.accountService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already registered."})
			return
		}
		log.Printf("[auth][register] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":     account.Username,
		"email":        account.Email,
		"api_key":      account.APIKey,
		"access_token": token,
		"token_type":   "bearer",
	})
}

// @Summary      Вход в систему
// @Description  Аутентифицирует по username или email и возвращает токен
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	identifier := strings.TrimSpace(req.Username)
	log.Printf("[auth][login] attempt identifier=%q", identifier)

	account, token, err := h.accountService.Login(identifier, req.Password)
	if err != nil {
		// единый ответ: не раскрываем, был ли аккаунт
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	log.Printf("[auth][login] success accountID=%d took=%s",
		account.ID, time.Since(start).Truncate(time.Millisecond))

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"api_key":      account.APIKey,
	})
}

// @Summary      Запрос сброса пароля
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.PasswordResetRequest  true  "Email аккаунта"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /request-password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.accountService.RequestPasswordReset(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User with this email not found"})
			return
		}
		log.Printf("[auth][password-reset] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request password reset"})
		return
	}

	// demo-поведение: токен возвращаем в ответе; в проде доставка
	// только по почте
	c.JSON(http.StatusOK, gin.H{
		"msg":         "Password reset token generated (simulate email)",
		"reset_token": token,
	})
}

// @Summary      Сброс пароля по токену
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.PasswordResetConfirm  true  "Токен и новый пароль"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, models.ErrInvalidOrExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}
		log.Printf("[auth][reset-password] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Password has been reset successfully"})
}
