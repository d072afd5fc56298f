package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayvcodr/internal/middleware"
	"ayvcodr/internal/models"
	"ayvcodr/internal/repositories"
	"ayvcodr/internal/services"
)

type fakeAccountRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, byID: map[int]*models.Account{}}
}

func (r *fakeAccountRepo) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == account.Username || a.Email == account.Email {
			return models.ErrConflict
		}
	}
	account.ID = r.nextID
	r.nextID++
	account.IsActive = true
	cp := *account
	r.byID[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(id int) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByUsername(username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByEmail(email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByUsernameOrEmail(value string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == value || a.Email == value {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByAPIKey(key string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.APIKey == key {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Update(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.byID {
		if id == account.ID {
			continue
		}
		if a.Username == account.Username || a.Email == account.Email {
			return models.ErrConflict
		}
	}
	cp := *account
	r.byID[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(accountID int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[accountID]; ok {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeAccountRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *fakeAccountRepo) List(limit, offset int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Account
	for _, a := range r.byID {
		cp := *a
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeAccountRepo) GetCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

// newAuthRouter собирает минимальный роутер с auth-цепочкой: ровно те
// маршруты, что нужны для сквозного сценария.
func newAuthRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeAccountRepo()
	authService := services.NewAuthService("test-secret", 0)
	accountService := services.NewAccountService(repo, repositories.NewMemoryResetStore(), nil, authService)

	authHandler := NewAuthHandler(accountService)
	accountHandler := NewAccountHandler(accountService, nil)

	r := gin.New()
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/request-password-reset", authHandler.RequestPasswordReset)
	r.POST("/reset-password", authHandler.ResetPassword)

	r.Use(middleware.AuthMiddleware(authService, accountService))
	r.GET("/profile", accountHandler.GetProfile)
	r.POST("/change-password", accountHandler.ChangePassword)
	r.DELETE("/delete-account", accountHandler.DeleteAccount)

	return r, authService
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func TestAuthFlow(t *testing.T) {
	r, authService := newAuthRouter(t)

	// регистрация
	w, resp := doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "bearer", resp["token_type"])
	assert.NotEmpty(t, resp["api_key"])
	assert.NotEmpty(t, resp["access_token"])
	firstAPIKey := resp["api_key"]

	// повторная регистрация с тем же username
	w, resp = doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username or email already registered.", resp["error"])

	// логин и проверка subject в токене
	w, resp = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "password-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, firstAPIKey, resp["api_key"])
	token, _ := resp["access_token"].(string)
	require.NotEmpty(t, token)

	claims, err := authService.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// профиль по токену
	w, resp = doJSON(t, r, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", resp["email"])

	// смена пароля
	w, _ = doJSON(t, r, http.MethodPost, "/change-password", token, gin.H{
		"old_password": "password-1",
		"new_password": "password-2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// старый пароль больше не подходит
	w, resp = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "password-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials.", resp["error"])

	// новый пароль работает
	w, resp = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "password-2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ = resp["access_token"].(string)
	require.NotEmpty(t, token)

	// удаление аккаунта: токен сразу перестаёт работать
	w, _ = doJSON(t, r, http.MethodDelete, "/delete-account", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r, _ := newAuthRouter(t)

	t.Run("missing header", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodGet, "/profile", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPasswordResetFlowHTTP(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "password-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("unknown email", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/request-password-reset", "", gin.H{
			"email": "nobody@example.com",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w, resp := doJSON(t, r, http.MethodPost, "/request-password-reset", "", gin.H{
		"email": "bob@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resetToken, _ := resp["reset_token"].(string)
	require.NotEmpty(t, resetToken)

	w, _ = doJSON(t, r, http.MethodPost, "/reset-password", "", gin.H{
		"token":        resetToken,
		"new_password": "password-3",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// токен одноразовый
	w, resp = doJSON(t, r, http.MethodPost, "/reset-password", "", gin.H{
		"token":        resetToken,
		"new_password": "password-4",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", resp["error"])

	// вход только по новому паролю
	w, _ = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "bob",
		"password": "password-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "bob",
		"password": "password-3",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
