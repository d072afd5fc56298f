package repositories

import (
	"database/sql"
	"errors"

	"ayvcodr/internal/models"
	"ayvcodr/internal/utils"
)

// pgResetStore - вариант стора для нескольких инстансов сервера.
type pgResetStore struct {
	DB *sql.DB
}

func NewPostgresResetStore(db *sql.DB) PasswordResetStore {
	return &pgResetStore{DB: db}
}

func (r *pgResetStore) Issue(accountID int) (string, error) {
	token, err := utils.NewResetToken(16)
	if err != nil {
		return "", err
	}
	const q = `
                INSERT INTO password_resets (account_id, token, expires_at)
                VALUES ($1, $2, NOW() + $3 * INTERVAL '1 second')
        `
	if _, err := r.DB.Exec(q, accountID, token, int(ResetTokenTTL.Seconds())); err != nil {
		return "", err
	}
	return token, nil
}

// Consume: одним запросом удаляем и возвращаем запись, срок проверяется
// в условии - двойное использование исключено на уровне БД.
func (r *pgResetStore) Consume(token string) (int, error) {
	const q = `
                DELETE FROM password_resets
                WHERE token = $1 AND expires_at > NOW()
                RETURNING account_id
        `
	var accountID int
	if err := r.DB.QueryRow(q, token).Scan(&accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrInvalidOrExpired
		}
		return 0, err
	}
	return accountID, nil
}
