package services

import (
	"math"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
)

type DashboardStats struct {
	TotalAPICalls   int     `json:"total_api_calls"`
	ActiveEndpoints int     `json:"active_endpoints"`
	AvgResponseTime float64 `json:"avg_response_time"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetUsageTrend(days int) ([]repositories.DailyUsage, error)
	GetUsageFor(accountID int) (int, error)
	GetUsageByUsername() (map[string]int, error)
	GetEndpoints() ([]*models.Endpoint, error)
}

type dashboardService struct {
	logs      repositories.CallLogRepository
	endpoints repositories.EndpointRepository
}

func NewDashboardService(logs repositories.CallLogRepository, endpoints repositories.EndpointRepository) DashboardService {
	return &dashboardService{logs: logs, endpoints: endpoints}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	total, err := s.logs.CountTotal()
	if err != nil {
		return nil, err
	}
	active, err := s.endpoints.CountByStatus(models.EndpointStatusActive)
	if err != nil {
		return nil, err
	}
	avg, err := s.logs.AvgLatency()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalAPICalls:   total,
		ActiveEndpoints: active,
		AvgResponseTime: round2(avg),
	}, nil
}

func (s *dashboardService) GetUsageTrend(days int) ([]repositories.DailyUsage, error) {
	if days < 1 {
		days = 7
	}
	trend, err := s.logs.UsageTrend(days)
	if err != nil {
		return nil, err
	}
	for i := range trend {
		trend[i].AvgLatency = round2(trend[i].AvgLatency)
	}
	return trend, nil
}

func (s *dashboardService) GetUsageFor(accountID int) (int, error) {
	return s.logs.CountByAccount(accountID)
}

func (s *dashboardService) GetUsageByUsername() (map[string]int, error) {
	return s.logs.UsageByUsername()
}

func (s *dashboardService) GetEndpoints() ([]*models.Endpoint, error) {
	return s.endpoints.List()
}
