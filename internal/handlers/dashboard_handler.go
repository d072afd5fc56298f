package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
	"ayvcodr/internal/services"
)

type DashboardHandler struct {
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// @Summary      Сводка по платформе
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.DashboardStats
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("[dashboard][stats] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Тренд использования API по дням
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  repositories.DailyUsage
// @Router       /dashboard/api-usage-trend [get]
func (h *DashboardHandler) GetUsageTrend(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}
	trend, err := h.service.GetUsageTrend(days)
	if err != nil {
		log.Printf("[dashboard][trend] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get usage trend"})
		return
	}
	c.JSON(http.StatusOK, trend)
}

// @Summary      Список зарегистрированных эндпоинтов
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Endpoint
// @Router       /dashboard/endpoints [get]
func (h *DashboardHandler) GetEndpoints(c *gin.Context) {
	endpoints, err := h.service.GetEndpoints()
	if err != nil {
		log.Printf("[dashboard][endpoints] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list endpoints"})
		return
	}
	if endpoints == nil {
		endpoints = []*models.Endpoint{}
	}
	c.JSON(http.StatusOK, endpoints)
}
