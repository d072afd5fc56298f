package repositories

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ayvcodr/internal/models"
)

type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id int) (*models.Account, error)
	GetByUsername(username string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetByUsernameOrEmail(value string) (*models.Account, error)
	GetByAPIKey(key string) (*models.Account, error)
	Update(account *models.Account) error
	UpdatePassword(accountID int, passwordHash string) error
	Delete(id int) error
	List(limit, offset int) ([]*models.Account, error)
	GetCount() (int, error)
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

// mapConflict - уникальные индексы БД это единственный надёжный барьер
// против гонки двух одновременных регистраций (предварительная проверка
// на уровне сервиса гонку не закрывает).
func mapConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return models.ErrConflict
	}
	return err
}

func (r *accountRepository) Create(account *models.Account) error {
	const q = `
		INSERT INTO accounts (username, email, password_hash, api_key, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.APIKey,
		account.IsActive,
	).Scan(&account.ID)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var active sql.NullBool
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.APIKey, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if active.Valid {
		a.IsActive = active.Bool
	}
	return a, nil
}

const accountCols = `id, username, email, password_hash, api_key, is_active`

func (r *accountRepository) GetByID(id int) (*models.Account, error) {
	return r.scanOne(r.DB.QueryRow(
		`SELECT `+accountCols+` FROM accounts WHERE id = $1`, id))
}

func (r *accountRepository) GetByUsername(username string) (*models.Account, error) {
	return r.scanOne(r.DB.QueryRow(
		`SELECT `+accountCols+` FROM accounts WHERE username = $1`, username))
}

func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	return r.scanOne(r.DB.QueryRow(
		`SELECT `+accountCols+` FROM accounts WHERE email = $1`, email))
}

func (r *accountRepository) GetByUsernameOrEmail(value string) (*models.Account, error) {
	return r.scanOne(r.DB.QueryRow(
		`SELECT `+accountCols+` FROM accounts WHERE username = $1 OR email = $1`, value))
}

func (r *accountRepository) GetByAPIKey(key string) (*models.Account, error) {
	return r.scanOne(r.DB.QueryRow(
		`SELECT `+accountCols+` FROM accounts WHERE api_key = $1`, key))
}

func (r *accountRepository) Update(account *models.Account) error {
	const q = `
		UPDATE accounts
		SET username=$1, email=$2, is_active=$3
		WHERE id=$4
	`
	_, err := r.DB.Exec(q, account.Username, account.Email, account.IsActive, account.ID)
	return mapConflict(err)
}

func (r *accountRepository) UpdatePassword(accountID int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE accounts SET password_hash=$1 WHERE id=$2`, passwordHash, accountID)
	return err
}

func (r *accountRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM accounts WHERE id=$1`, id)
	return err
}

func (r *accountRepository) List(limit, offset int) ([]*models.Account, error) {
	const q = `
		SELECT ` + accountCols + `
		FROM accounts
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Account
	for rows.Next() {
		a := &models.Account{}
		var active sql.NullBool
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.APIKey, &active); err != nil {
			return nil, err
		}
		if active.Valid {
			a.IsActive = active.Bool
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *accountRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&c)
	return c, err
}
