package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
	"ayvcodr/internal/services"
	"ayvcodr/internal/textops"
)

type EndpointHandler struct {
	service services.EndpointService
}

func NewEndpointHandler(service services.EndpointService) *EndpointHandler {
	return &EndpointHandler{service: service}
}

// @Summary      Регистрация пользовательского эндпоинта
// @Description  Привязывает аккаунт к одной из разрешённых операций;
// @Description  повторная регистрация заменяет привязку
// @Tags         Endpoints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /register-endpoint [post]
func (h *EndpointHandler) RegisterEndpoint(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	var req models.RegisterEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	endpoint, err := h.service.RegisterEndpoint(account.ID, req.Operation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              err.Error(),
			"allowed_operations": h.service.AllowedOperations(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf(
			"Custom endpoint for user %s registered at /api/%s/custom with operation '%s'",
			account.Username, account.Username, endpoint.Operation),
	})
}

// @Summary      Вызов пользовательского эндпоинта
// @Description  Аутентификация по X-API-Key; выполняется привязанная операция
// @Tags         Endpoints
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/{username}/custom [post]
func (h *EndpointHandler) Custom(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Execute(account.ID, c.Request.URL.Path, data)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No endpoint registered for this user"})
			return
		}
		log.Printf("[endpoints][custom] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute endpoint"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Базовый анализ текста
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /analyze [post]
func (h *EndpointHandler) Analyze(c *gin.Context) {
	var req models.TextAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"length":     textops.TextLength(req.Text),
		"word_count": textops.WordCount(req.Text),
	})
}

// @Summary      Анализ тональности
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  textops.Sentiment
// @Router       /ai/sentiment [post]
func (h *EndpointHandler) Sentiment(c *gin.Context) {
	var req models.TextAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, textops.AnalyzeSentiment(req.Text))
}

// @Summary      Извлечение ключевых фраз
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]string
// @Router       /ai/keywords [post]
func (h *EndpointHandler) Keywords(c *gin.Context) {
	var req models.KeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n := req.NumKeywords
	if n <= 0 {
		n = 5
	}
	keywords := textops.ExtractKeywords(req.Text)
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}
