package services

import (
	"fmt"
	"log"
	"strings"

	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
	"ayvcodr/internal/utils"
)

type AccountService interface {
	Register(username, email, password string) (*models.Account, string, error)
	// Login принимает username или email в одном поле.
	Login(identifier, password string) (*models.Account, string, error)
	GetByID(id int) (*models.Account, error)
	GetByUsername(username string) (*models.Account, error)
	GetByAPIKey(key string) (*models.Account, error)
	UpdateProfile(account *models.Account, username, email string) error
	ChangePassword(account *models.Account, oldPassword, newPassword string) error
	RequestPasswordReset(email string) (string, error)
	ResetPassword(token, newPassword string) error
	DeleteAccount(account *models.Account) error
	ListAccounts(limit, offset int) ([]*models.Account, error)
	GetCount() (int, error)
}

type accountService struct {
	repo         repositories.AccountRepository
	resetStore   repositories.PasswordResetStore
	emailService EmailService
	authService  AuthService
}

func NewAccountService(
	repo repositories.AccountRepository,
	resetStore repositories.PasswordResetStore,
	emailService EmailService,
	authService AuthService,
) AccountService {
	return &accountService{
		repo:         repo,
		resetStore:   resetStore,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *accountService) Register(username, email, password string) (*models.Account, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return nil, "", fmt.Errorf("username and email are required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, "", fmt.Errorf("password is required")
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	apiKey, err := utils.NewAccountAPIKey()
	if err != nil {
		return nil, "", err
	}

	account := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		APIKey:       apiKey,
		IsActive:     true,
	}
	// уникальность проверяет БД; гонку двух регистраций решает constraint
	if err := s.repo.Create(account); err != nil {
		return nil, "", err
	}

	token, err := s.authService.IssueToken(account)
	if err != nil {
		return nil, "", err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(account.Email, account.Username); err != nil {
			// warn but do not fail registration
			log.Printf("[account][register] warning: failed to send welcome email to %s: %v", account.Email, err)
		}
	}

	return account, token, nil
}

func (s *accountService) Login(identifier, password string) (*models.Account, string, error) {
	identifier = strings.TrimSpace(identifier)
	account, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil || account == nil {
		// не раскрываем, существует ли аккаунт
		log.Printf("[account][login] lookup failed for %q: %v", identifier, err)
		return nil, "", models.ErrUnauthorized
	}
	// пароль сравниваем как есть: при регистрации хешируется сырой ввод
	if !s.authService.CheckPassword(password, account.PasswordHash) {
		log.Printf("[account][login] password mismatch for accountID=%d", account.ID)
		return nil, "", models.ErrUnauthorized
	}

	token, err := s.authService.IssueToken(account)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *accountService) GetByID(id int) (*models.Account, error) {
	return s.repo.GetByID(id)
}

func (s *accountService) GetByUsername(username string) (*models.Account, error) {
	return s.repo.GetByUsername(username)
}

func (s *accountService) GetByAPIKey(key string) (*models.Account, error) {
	return s.repo.GetByAPIKey(key)
}

func (s *accountService) UpdateProfile(account *models.Account, username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return fmt.Errorf("username and email are required")
	}

	if username != account.Username {
		if other, err := s.repo.GetByUsername(username); err == nil && other != nil && other.ID != account.ID {
			return models.ErrConflict
		}
		account.Username = username
	}
	if email != account.Email {
		if other, err := s.repo.GetByEmail(email); err == nil && other != nil && other.ID != account.ID {
			return models.ErrConflict
		}
		account.Email = email
	}
	// предварительная проверка выше только ради внятной ошибки;
	// constraint в Update закрывает гонку
	return s.repo.Update(account)
}

func (s *accountService) ChangePassword(account *models.Account, oldPassword, newPassword string) error {
	if !s.authService.CheckPassword(oldPassword, account.PasswordHash) {
		return models.ErrUnauthorized
	}
	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(account.ID, hash); err != nil {
		return err
	}
	account.PasswordHash = hash
	s.authService.Revoke(account.ID)
	return nil
}

func (s *accountService) RequestPasswordReset(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	account, err := s.repo.GetByEmail(email)
	if err != nil || account == nil {
		log.Printf("[account][password-reset] request for %q: account not found: %v", email, err)
		return "", models.ErrNotFound
	}

	token, err := s.resetStore.Issue(account.ID)
	if err != nil {
		return "", err
	}

	if s.emailService != nil {
		if err := s.emailService.SendPasswordResetEmail(account.Email, token); err != nil {
			log.Printf("[account][password-reset] failed to send email to %s: %v", account.Email, err)
		}
	}
	return token, nil
}

func (s *accountService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || strings.TrimSpace(newPassword) == "" {
		return models.ErrInvalidOrExpired
	}

	accountID, err := s.resetStore.Consume(token)
	if err != nil {
		return err
	}
	account, err := s.repo.GetByID(accountID)
	if err != nil || account == nil {
		return models.ErrInvalidOrExpired
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(account.ID, hash); err != nil {
		return err
	}
	s.authService.Revoke(account.ID)
	return nil
}

func (s *accountService) DeleteAccount(account *models.Account) error {
	if err := s.repo.Delete(account.ID); err != nil {
		return err
	}
	s.authService.Revoke(account.ID)
	return nil
}

func (s *accountService) ListAccounts(limit, offset int) ([]*models.Account, error) {
	return s.repo.List(limit, offset)
}

func (s *accountService) GetCount() (int, error) {
	return s.repo.GetCount()
}
