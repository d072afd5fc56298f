package models

import "time"

// Consent - согласия аккаунта на обработку данных (частичное обновление).
type Consent struct {
	AccountID             int       `json:"-"`
	DataProcessingConsent bool      `json:"data_processing_consent"`
	MarketingConsent      bool      `json:"marketing_consent"`
	AnalyticsConsent      bool      `json:"analytics_consent"`
	CookieConsent         bool      `json:"cookie_consent"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type ConsentUpdateRequest struct {
	DataProcessingConsent *bool `json:"data_processing_consent"`
	MarketingConsent      *bool `json:"marketing_consent"`
	AnalyticsConsent      *bool `json:"analytics_consent"`
	CookieConsent         *bool `json:"cookie_consent"`
}

type AuditLogEntry struct {
	ID        string    `json:"id"`
	AccountID int       `json:"-"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
}
