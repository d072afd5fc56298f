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

type APIKeyHandler struct {
	service services.APIKeyService
}

func NewAPIKeyHandler(service services.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{service: service}
}

// @Summary      Список ключей аккаунта
// @Tags         API-Keys
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.APIKey
// @Router       /api-keys [get]
func (h *APIKeyHandler) List(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	keys, err := h.service.ListKeys(account.ID)
	if err != nil {
		log.Printf("[api-keys][list] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list API keys"})
		return
	}
	if keys == nil {
		keys = []*models.APIKey{}
	}
	c.JSON(http.StatusOK, keys)
}

// @Summary      Выпуск именованного ключа
// @Tags         API-Keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.APIKey
// @Router       /api-keys [post]
func (h *APIKeyHandler) Create(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	var req models.APIKeyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key, err := h.service.CreateKey(account.ID, &req)
	if err != nil {
		log.Printf("[api-keys][create] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}
	c.JSON(http.StatusOK, key)
}

// @Summary      Обновление ключа
// @Tags         API-Keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.APIKey
// @Failure      404  {object}  map[string]string
// @Router       /api-keys/{id} [patch]
func (h *APIKeyHandler) Update(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	keyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key ID"})
		return
	}
	var req models.APIKeyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key, err := h.service.UpdateKey(account.ID, keyID, &req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		log.Printf("[api-keys][update] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update API key"})
		return
	}
	c.JSON(http.StatusOK, key)
}

// @Summary      Удаление ключа
// @Tags         API-Keys
// @Security     BearerAuth
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api-keys/{id} [delete]
func (h *APIKeyHandler) Delete(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	keyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key ID"})
		return
	}
	if err := h.service.DeleteKey(account.ID, keyID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		log.Printf("[api-keys][delete] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
		return
	}
	c.Status(http.StatusNoContent)
}
