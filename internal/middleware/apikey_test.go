package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ayvcodr/internal/models"
	"ayvcodr/internal/services"
)

type stubAccountService struct {
	services.AccountService
	byUsername map[string]*models.Account
	byKey      map[string]*models.Account
}

func (s *stubAccountService) GetByUsername(username string) (*models.Account, error) {
	return s.byUsername[username], nil
}

func (s *stubAccountService) GetByAPIKey(key string) (*models.Account, error) {
	return s.byKey[key], nil
}

type stubAPIKeyService struct {
	services.APIKeyService
	byKey map[string]*models.APIKey
}

func (s *stubAPIKeyService) ResolveKey(key string) (*models.APIKey, error) {
	k, ok := s.byKey[key]
	if !ok {
		return nil, models.ErrUnauthorized
	}
	return k, nil
}

func newAPIKeyTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	alice := &models.Account{ID: 1, Username: "alice", APIKey: "default-key-alice"}
	bob := &models.Account{ID: 2, Username: "bob", APIKey: "default-key-bob"}

	accounts := &stubAccountService{
		byUsername: map[string]*models.Account{"alice": alice, "bob": bob},
		byKey: map[string]*models.Account{
			"default-key-alice": alice,
			"default-key-bob":   bob,
		},
	}
	keys := &stubAPIKeyService{
		byKey: map[string]*models.APIKey{
			"sk-alice-managed": {ID: 10, AccountID: 1, IsActive: true},
			"sk-bob-managed":   {ID: 11, AccountID: 2, IsActive: true},
		},
	}

	r := gin.New()
	r.POST("/api/:username/custom", APIKeyAuth(accounts, keys), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account_id": c.GetInt("account_id")})
	})
	return r
}

func doAPIKeyRequest(r *gin.Engine, username, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/"+username+"/custom", nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth(t *testing.T) {
	r := newAPIKeyTestRouter()

	t.Run("default account key", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "default-key-alice")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"account_id":1`)
	})

	t.Run("managed key of same account", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "sk-alice-managed")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid API key.")
	})

	t.Run("unknown key", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "no-such-key")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("key of another account", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "default-key-bob")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("managed key of another account", func(t *testing.T) {
		w := doAPIKeyRequest(r, "alice", "sk-bob-managed")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doAPIKeyRequest(r, "nobody", "default-key-alice")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
