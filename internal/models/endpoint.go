package models

import "time"

// Endpoint - пользовательский эндпоинт /api/{username}/custom,
// привязанный к одной из разрешённых операций (закрытый список).
type Endpoint struct {
	ID        int       `json:"id"`
	AccountID int       `json:"-"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used"`
}

const (
	EndpointStatusActive   = "active"
	EndpointStatusDisabled = "disabled"
)

type APICallLog struct {
	ID         int       `json:"id"`
	AccountID  int       `json:"account_id"`
	EndpointID *int      `json:"endpoint_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	LatencyMS  float64   `json:"latency_ms"`
	StatusCode int       `json:"status_code"`
	Path       string    `json:"path"`
}

type RegisterEndpointRequest struct {
	Operation string `json:"operation" binding:"required"`
}

type TextAnalysisRequest struct {
	Text string `json:"text" binding:"required"`
}

type KeywordsRequest struct {
	Text        string `json:"text" binding:"required"`
	NumKeywords int    `json:"num_keywords"`
}
