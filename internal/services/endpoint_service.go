package services

import (
	"fmt"
	"sort"
	"time"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
	"ayvcodr/internal/textops"
)

// Operation - чистая функция над полями запроса; операции перечислены
// статически, пользовательский код не исполняется никогда.
type Operation func(data map[string]any) map[string]any

func textOf(data map[string]any) string {
	text, _ := data["text"].(string)
	return text
}

var allowedOperations = map[string]Operation{
	"text_length": func(data map[string]any) map[string]any {
		return map[string]any{"length": textops.TextLength(textOf(data))}
	},
	"word_count": func(data map[string]any) map[string]any {
		return map[string]any{"word_count": textops.WordCount(textOf(data))}
	},
	"sentiment": func(data map[string]any) map[string]any {
		s := textops.AnalyzeSentiment(textOf(data))
		return map[string]any{"polarity": s.Polarity, "subjectivity": s.Subjectivity}
	},
	"keywords": func(data map[string]any) map[string]any {
		return map[string]any{"keywords": textops.ExtractKeywords(textOf(data))}
	},
}

type EndpointService interface {
	RegisterEndpoint(accountID int, operation string) (*models.Endpoint, error)
	// Execute выполняет операцию, привязанную к аккаунту, и пишет call log.
	Execute(accountID int, path string, data map[string]any) (map[string]any, error)
	ListEndpoints() ([]*models.Endpoint, error)
	AllowedOperations() []string
}

type endpointService struct {
	repo repositories.EndpointRepository
	logs repositories.CallLogRepository
	now  func() time.Time
}

func NewEndpointService(repo repositories.EndpointRepository, logs repositories.CallLogRepository) EndpointService {
	return &endpointService{repo: repo, logs: logs, now: time.Now}
}

func (s *endpointService) RegisterEndpoint(accountID int, operation string) (*models.Endpoint, error) {
	if _, ok := allowedOperations[operation]; !ok {
		return nil, fmt.Errorf("operation %q not allowed", operation)
	}
	endpoint := &models.Endpoint{
		AccountID: accountID,
		Operation: operation,
		Status:    models.EndpointStatusActive,
	}
	if err := s.repo.Upsert(endpoint); err != nil {
		return nil, err
	}
	return endpoint, nil
}

func (s *endpointService) Execute(accountID int, path string, data map[string]any) (map[string]any, error) {
	endpoint, err := s.repo.GetByAccount(accountID)
	if err != nil {
		return nil, err
	}
	if endpoint == nil || endpoint.Status != models.EndpointStatusActive {
		return nil, models.ErrNotFound
	}
	op, ok := allowedOperations[endpoint.Operation]
	if !ok {
		return nil, fmt.Errorf("operation %q not allowed", endpoint.Operation)
	}

	start := s.now()
	result := op(data)
	latency := float64(s.now().Sub(start).Microseconds()) / 1000.0

	if err := s.repo.TouchUsage(endpoint.ID, s.now()); err != nil {
		return nil, err
	}
	entry := &models.APICallLog{
		AccountID:  accountID,
		EndpointID: &endpoint.ID,
		Timestamp:  s.now(),
		LatencyMS:  latency,
		StatusCode: 200,
		Path:       path,
	}
	if err := s.logs.Create(entry); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *endpointService) ListEndpoints() ([]*models.Endpoint, error) {
	return s.repo.List()
}

func (s *endpointService) AllowedOperations() []string {
	names := make([]string, 0, len(allowedOperations))
	for name := range allowedOperations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
