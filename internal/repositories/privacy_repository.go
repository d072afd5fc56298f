package repositories

import (
	"database/sql"
	"errors"

	"ayvcodr/internal/models"
)

type ConsentRepository interface {
	Get(accountID int) (*models.Consent, error)
	Upsert(consent *models.Consent) error
	Delete(accountID int) error
}

type AuditLogRepository interface {
	Create(entry *models.AuditLogEntry) error
	ListByAccount(accountID int) ([]*models.AuditLogEntry, error)
}

type consentRepository struct {
	DB *sql.DB
}

func NewConsentRepository(db *sql.DB) ConsentRepository {
	return &consentRepository{DB: db}
}

func (r *consentRepository) Get(accountID int) (*models.Consent, error) {
	const q = `
		SELECT account_id, data_processing_consent, marketing_consent,
		       analytics_consent, cookie_consent, updated_at
		FROM consents
		WHERE account_id = $1
	`
	c := &models.Consent{}
	err := r.DB.QueryRow(q, accountID).Scan(
		&c.AccountID, &c.DataProcessingConsent, &c.MarketingConsent,
		&c.AnalyticsConsent, &c.CookieConsent, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *consentRepository) Upsert(consent *models.Consent) error {
	const q = `
		INSERT INTO consents (account_id, data_processing_consent, marketing_consent,
		                      analytics_consent, cookie_consent, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (account_id)
		DO UPDATE SET data_processing_consent = EXCLUDED.data_processing_consent,
		              marketing_consent       = EXCLUDED.marketing_consent,
		              analytics_consent       = EXCLUDED.analytics_consent,
		              cookie_consent          = EXCLUDED.cookie_consent,
		              updated_at              = NOW()
		RETURNING updated_at
	`
	return r.DB.QueryRow(q,
		consent.AccountID,
		consent.DataProcessingConsent,
		consent.MarketingConsent,
		consent.AnalyticsConsent,
		consent.CookieConsent,
	).Scan(&consent.UpdatedAt)
}

func (r *consentRepository) Delete(accountID int) error {
	_, err := r.DB.Exec(`DELETE FROM consents WHERE account_id = $1`, accountID)
	return err
}

type auditLogRepository struct {
	DB *sql.DB
}

func NewAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &auditLogRepository{DB: db}
}

func (r *auditLogRepository) Create(entry *models.AuditLogEntry) error {
	const q = `
		INSERT INTO audit_logs (id, account_id, action, timestamp, status, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.Exec(q,
		entry.ID, entry.AccountID, entry.Action, entry.Timestamp, entry.Status, entry.Details)
	return err
}

func (r *auditLogRepository) ListByAccount(accountID int) ([]*models.AuditLogEntry, error) {
	const q = `
		SELECT id, account_id, action, timestamp, status, details
		FROM audit_logs
		WHERE account_id = $1
		ORDER BY timestamp
	`
	rows, err := r.DB.Query(q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.AuditLogEntry
	for rows.Next() {
		e := &models.AuditLogEntry{}
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Action, &e.Timestamp, &e.Status, &e.Details); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
