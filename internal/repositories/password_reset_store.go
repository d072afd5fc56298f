package repositories

import (
	"sync"
	"time"

	"ayvcodr/internal/models"
	"ayvcodr/internal/utils"
)

// ResetTokenTTL - окно действия токена сброса пароля.
const ResetTokenTTL = 15 * time.Minute

// PasswordResetStore выдаёт одноразовые токены сброса.
// Consume обязан атомарно проверить и удалить токен: повторное
// использование недопустимо даже при параллельных запросах.
// Неизвестный и просроченный токен неразличимы для вызывающего.
type PasswordResetStore interface {
	Issue(accountID int) (string, error)
	Consume(token string) (int, error)
}

type resetEntry struct {
	accountID int
	expiresAt time.Time
}

// memoryResetStore - стор по умолчанию; просроченные записи живут в карте
// до попытки использования (фонового вычищения нет).
type memoryResetStore struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
	now    func() time.Time
}

func NewMemoryResetStore() PasswordResetStore {
	return &memoryResetStore{
		tokens: make(map[string]resetEntry),
		now:    time.Now,
	}
}

func (s *memoryResetStore) Issue(accountID int) (string, error) {
	token, err := utils.NewResetToken(16)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetEntry{
		accountID: accountID,
		expiresAt: s.now().Add(ResetTokenTTL),
	}
	return token, nil
}

func (s *memoryResetStore) Consume(token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return 0, models.ErrInvalidOrExpired
	}
	delete(s.tokens, token)
	if s.now().After(entry.expiresAt) {
		return 0, models.ErrInvalidOrExpired
	}
	return entry.accountID, nil
}
