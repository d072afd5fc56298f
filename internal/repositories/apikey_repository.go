package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"ayvcodr/internal/models"
)

type APIKeyRepository interface {
	Create(key *models.APIKey) error
	GetByID(accountID, id int) (*models.APIKey, error)
	GetByKey(key string) (*models.APIKey, error)
	ListByAccount(accountID int) ([]*models.APIKey, error)
	Update(key *models.APIKey) error
	Delete(accountID, id int) error
	TouchUsage(id int, at time.Time) error
}

type apiKeyRepository struct {
	DB *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) APIKeyRepository {
	return &apiKeyRepository{DB: db}
}

// permissions храним строкой через запятую, как и раньше.
func joinPerms(perms []string) string {
	return strings.Join(perms, ",")
}

func splitPerms(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (r *apiKeyRepository) Create(key *models.APIKey) error {
	const q = `
		INSERT INTO api_keys (account_id, name, key, permissions, rate_limit, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		key.AccountID,
		key.Name,
		key.Key,
		joinPerms(key.Permissions),
		key.RateLimit,
		key.ExpiresAt,
		key.IsActive,
	).Scan(&key.ID, &key.CreatedAt)
}

func (r *apiKeyRepository) scan(row interface{ Scan(...any) error }) (*models.APIKey, error) {
	k := &models.APIKey{}
	var (
		perms     string
		lastUsed  sql.NullTime
		expiresAt sql.NullTime
	)
	err := row.Scan(&k.ID, &k.AccountID, &k.Name, &k.Key, &perms,
		&k.RateLimit, &k.UsageCount, &lastUsed, &k.CreatedAt, &expiresAt, &k.IsActive)
	if err != nil {
		return nil, err
	}
	k.Permissions = splitPerms(perms)
	if lastUsed.Valid {
		t := lastUsed.Time
		k.LastUsed = &t
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		k.ExpiresAt = &t
	}
	return k, nil
}

const apiKeyCols = `id, account_id, name, key, permissions, rate_limit, usage_count, last_used, created_at, expires_at, is_active`

func (r *apiKeyRepository) GetByID(accountID, id int) (*models.APIKey, error) {
	k, err := r.scan(r.DB.QueryRow(
		`SELECT `+apiKeyCols+` FROM api_keys WHERE id = $1 AND account_id = $2`, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return k, nil
}

func (r *apiKeyRepository) GetByKey(key string) (*models.APIKey, error) {
	k, err := r.scan(r.DB.QueryRow(
		`SELECT `+apiKeyCols+` FROM api_keys WHERE key = $1`, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return k, nil
}

func (r *apiKeyRepository) ListByAccount(accountID int) ([]*models.APIKey, error) {
	rows, err := r.DB.Query(
		`SELECT `+apiKeyCols+` FROM api_keys WHERE account_id = $1 ORDER BY id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.APIKey
	for rows.Next() {
		k, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, k)
	}
	return res, rows.Err()
}

func (r *apiKeyRepository) Update(key *models.APIKey) error {
	const q = `
		UPDATE api_keys
		SET name=$1, permissions=$2, rate_limit=$3, expires_at=$4, is_active=$5
		WHERE id=$6 AND account_id=$7
	`
	_, err := r.DB.Exec(q,
		key.Name,
		joinPerms(key.Permissions),
		key.RateLimit,
		key.ExpiresAt,
		key.IsActive,
		key.ID,
		key.AccountID,
	)
	return err
}

func (r *apiKeyRepository) Delete(accountID, id int) error {
	_, err := r.DB.Exec(`DELETE FROM api_keys WHERE id=$1 AND account_id=$2`, id, accountID)
	return err
}

// TouchUsage фиксирует обращение по ключу.
func (r *apiKeyRepository) TouchUsage(id int, at time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE api_keys SET usage_count = usage_count + 1, last_used = $1 WHERE id = $2`, at, id)
	return err
}
