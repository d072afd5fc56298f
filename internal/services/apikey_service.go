package services

import (
	"time"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
	"ayvcodr/internal/utils"
)

const defaultRateLimit = 1000

type APIKeyService interface {
	CreateKey(accountID int, req *models.APIKeyCreateRequest) (*models.APIKey, error)
	ListKeys(accountID int) ([]*models.APIKey, error)
	UpdateKey(accountID, keyID int, req *models.APIKeyCreateRequest) (*models.APIKey, error)
	DeleteKey(accountID, keyID int) error
	// ResolveKey возвращает активный непросроченный ключ и фиксирует обращение.
	ResolveKey(key string) (*models.APIKey, error)
}

type apiKeyService struct {
	repo repositories.APIKeyRepository
}

func NewAPIKeyService(repo repositories.APIKeyRepository) APIKeyService {
	return &apiKeyService{repo: repo}
}

func (s *apiKeyService) CreateKey(accountID int, req *models.APIKeyCreateRequest) (*models.APIKey, error) {
	raw, err := utils.NewManagedAPIKey()
	if err != nil {
		return nil, err
	}
	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}
	perms := req.Permissions
	if perms == nil {
		perms = []string{}
	}
	key := &models.APIKey{
		AccountID:   accountID,
		Name:        req.Name,
		Key:         raw,
		Permissions: perms,
		RateLimit:   rateLimit,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    true,
	}
	if err := s.repo.Create(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *apiKeyService) ListKeys(accountID int) ([]*models.APIKey, error) {
	return s.repo.ListByAccount(accountID)
}

func (s *apiKeyService) UpdateKey(accountID, keyID int, req *models.APIKeyCreateRequest) (*models.APIKey, error) {
	key, err := s.repo.GetByID(accountID, keyID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, models.ErrNotFound
	}

	key.Name = req.Name
	if req.Permissions != nil {
		key.Permissions = req.Permissions
	}
	if req.RateLimit > 0 {
		key.RateLimit = req.RateLimit
	}
	key.ExpiresAt = req.ExpiresAt

	if err := s.repo.Update(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *apiKeyService) DeleteKey(accountID, keyID int) error {
	key, err := s.repo.GetByID(accountID, keyID)
	if err != nil {
		return err
	}
	if key == nil {
		return models.ErrNotFound
	}
	return s.repo.Delete(accountID, keyID)
}

func (s *apiKeyService) ResolveKey(raw string) (*models.APIKey, error) {
	key, err := s.repo.GetByKey(raw)
	if err != nil {
		return nil, err
	}
	if key == nil || !key.IsActive {
		return nil, models.ErrUnauthorized
	}
	if key.ExpiresAt != nil && time.Now().After(*key.ExpiresAt) {
		return nil, models.ErrUnauthorized
	}
	if err := s.repo.TouchUsage(key.ID, time.Now()); err != nil {
		return nil, err
	}
	return key, nil
}
