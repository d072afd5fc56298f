package handlers

import (
	"bytes"
	"encoding/csv"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ayvcodr/internal/models"
	"ayvcodr/internal/pdf"
	"ayvcodr/internal/services"
)

type PrivacyHandler struct {
	service services.PrivacyService
	reports pdf.Generator
}

func NewPrivacyHandler(service services.PrivacyService, reports pdf.Generator) *PrivacyHandler {
	return &PrivacyHandler{service: service, reports: reports}
}

// @Summary      Экспорт персональных данных
// @Tags         Privacy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.AccountExport
// @Router       /privacy/export [post]
func (h *PrivacyHandler) Export(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	export, err := h.service.ExportData(account)
	if err != nil {
		log.Printf("[privacy][export] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data"})
		return
	}
	c.JSON(http.StatusOK, export)
}

// @Summary      Удаление накопленных данных
// @Tags         Privacy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /privacy/delete [post]
func (h *PrivacyHandler) Delete(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	if err := h.service.DeleteData(account); err != nil {
		log.Printf("[privacy][delete] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "User data deleted."})
}

// @Summary      Обновление согласий
// @Tags         Privacy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /privacy/consent [post]
func (h *PrivacyHandler) UpdateConsent(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	var req models.ConsentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.service.UpdateConsent(account, &req); err != nil {
		log.Printf("[privacy][consent] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Consent updated."})
}

// @Summary      Журнал аудита
// @Tags         Privacy
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.AuditLogEntry
// @Router       /privacy/audit-logs [get]
func (h *PrivacyHandler) GetAuditLogs(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	logs, err := h.service.GetAuditLogs(account.ID)
	if err != nil {
		log.Printf("[privacy][audit-logs] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit logs"})
		return
	}
	if logs == nil {
		logs = []*models.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

// @Summary      Журнал аудита в CSV
// @Tags         Privacy
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200
// @Router       /privacy/audit-logs/csv [get]
func (h *PrivacyHandler) DownloadAuditLogsCSV(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	logs, err := h.service.GetAuditLogs(account.ID)
	if err != nil {
		log.Printf("[privacy][audit-csv] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit logs"})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Action", "Timestamp", "Status", "Details"})
	for _, e := range logs {
		_ = w.Write([]string{e.ID, e.Action, e.Timestamp.Format("2006-01-02T15:04:05Z07:00"), e.Status, e.Details})
	}
	w.Flush()

	c.Header("Content-Disposition", "attachment; filename=audit-logs.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary      Журнал аудита в PDF
// @Tags         Privacy
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200
// @Router       /privacy/audit-logs/pdf [get]
func (h *PrivacyHandler) DownloadAuditLogsPDF(c *gin.Context) {
	account, ok := mustAccount(c)
	if !ok {
		return
	}
	logs, err := h.service.GetAuditLogs(account.ID)
	if err != nil {
		log.Printf("[privacy][audit-pdf] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit logs"})
		return
	}

	var buf bytes.Buffer
	if err := h.reports.RenderAuditReport(account.Username, logs, &buf); err != nil {
		log.Printf("[privacy][audit-pdf] render error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=audit-logs.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
