package models

import "time"

// APIKey - именованный ключ, выдаваемый аккаунту;
// не путать с Account.APIKey (ключ по умолчанию, выдаётся при регистрации).
type APIKey struct {
	ID          int        `json:"id"`
	AccountID   int        `json:"-"`
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	Permissions []string   `json:"permissions"`
	RateLimit   int        `json:"rate_limit"`
	UsageCount  int        `json:"usage_count"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
}

type APIKeyCreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Permissions []string   `json:"permissions"`
	RateLimit   int        `json:"rate_limit"`
	ExpiresAt   *time.Time `json:"expires_at"`
}
