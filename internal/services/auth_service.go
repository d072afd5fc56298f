package services

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ayvcodr/internal/models"
)

type Claims struct {
	AccountID int `json:"account_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(plain, hash string) bool
	IssueToken(account *models.Account) (string, error)
	VerifyToken(tokenStr string) (*Claims, error)
	// Revoke инвалидирует все токены аккаунта, выданные до этого момента.
	Revoke(accountID int)
}

type authService struct {
	secret   []byte
	tokenTTL time.Duration

	mu      sync.RWMutex
	revoked map[int]time.Time
}

func NewAuthService(secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		revoked:  make(map[int]time.Time),
	}
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *authService) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *authService) IssueToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrUnauthorized
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, models.ErrUnauthorized
	}

	s.mu.RLock()
	revokedAt, revoked := s.revoked[claims.AccountID]
	s.mu.RUnlock()
	if revoked && (claims.IssuedAt == nil || claims.IssuedAt.Time.Before(revokedAt)) {
		return nil, models.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) Revoke(accountID int) {
	s.mu.Lock()
	// iat имеет секундную точность; усечение не даёт отозвать токен,
	// выданный в ту же секунду уже после отзыва
	s.revoked[accountID] = time.Now().Truncate(time.Second)
	s.mu.Unlock()
}
