package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
)

// AccountExport - выгрузка персональных данных аккаунта.
type AccountExport struct {
	Account    models.AccountOut `json:"account"`
	Consent    *models.Consent   `json:"consent,omitempty"`
	UsageCount int               `json:"usage_count"`
}

type PrivacyService interface {
	ExportData(account *models.Account) (*AccountExport, error)
	// DeleteData стирает накопленные данные (согласия, логи вызовов,
	// привязку эндпоинта); сам аккаунт удаляется отдельной операцией.
	DeleteData(account *models.Account) error
	UpdateConsent(account *models.Account, req *models.ConsentUpdateRequest) (*models.Consent, error)
	GetAuditLogs(accountID int) ([]*models.AuditLogEntry, error)
}

type privacyService struct {
	consents  repositories.ConsentRepository
	auditLogs repositories.AuditLogRepository
	callLogs  repositories.CallLogRepository
	endpoints repositories.EndpointRepository
}

func NewPrivacyService(
	consents repositories.ConsentRepository,
	auditLogs repositories.AuditLogRepository,
	callLogs repositories.CallLogRepository,
	endpoints repositories.EndpointRepository,
) PrivacyService {
	return &privacyService{
		consents:  consents,
		auditLogs: auditLogs,
		callLogs:  callLogs,
		endpoints: endpoints,
	}
}

func (s *privacyService) audit(accountID int, action, details string) {
	entry := &models.AuditLogEntry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Action:    action,
		Timestamp: time.Now(),
		Status:    "completed",
		Details:   details,
	}
	if err := s.auditLogs.Create(entry); err != nil {
		// аудит не должен ронять основную операцию
		log.Printf("[privacy][audit] failed to record %q for accountID=%d: %v", action, accountID, err)
	}
}

func (s *privacyService) ExportData(account *models.Account) (*AccountExport, error) {
	consent, err := s.consents.Get(account.ID)
	if err != nil {
		return nil, err
	}
	usage, err := s.callLogs.CountByAccount(account.ID)
	if err != nil {
		return nil, err
	}
	s.audit(account.ID, "Data Export Request", "User requested data export.")
	return &AccountExport{
		Account:    account.Out(),
		Consent:    consent,
		UsageCount: usage,
	}, nil
}

func (s *privacyService) DeleteData(account *models.Account) error {
	if err := s.consents.Delete(account.ID); err != nil {
		return err
	}
	if err := s.callLogs.DeleteByAccount(account.ID); err != nil {
		return err
	}
	if err := s.endpoints.DeleteByAccount(account.ID); err != nil {
		return err
	}
	s.audit(account.ID, "Data Deletion Request", "User requested data deletion.")
	return nil
}

func (s *privacyService) UpdateConsent(account *models.Account, req *models.ConsentUpdateRequest) (*models.Consent, error) {
	consent, err := s.consents.Get(account.ID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		consent = &models.Consent{AccountID: account.ID}
	}
	// частичное обновление: трогаем только переданные поля
	if req.DataProcessingConsent != nil {
		consent.DataProcessingConsent = *req.DataProcessingConsent
	}
	if req.MarketingConsent != nil {
		consent.MarketingConsent = *req.MarketingConsent
	}
	if req.AnalyticsConsent != nil {
		consent.AnalyticsConsent = *req.AnalyticsConsent
	}
	if req.CookieConsent != nil {
		consent.CookieConsent = *req.CookieConsent
	}
	if err := s.consents.Upsert(consent); err != nil {
		return nil, err
	}
	s.audit(account.ID, "Consent Update", "User updated consent preferences.")
	return consent, nil
}

func (s *privacyService) GetAuditLogs(accountID int) ([]*models.AuditLogEntry, error) {
	return s.auditLogs.ListByAccount(accountID)
}
