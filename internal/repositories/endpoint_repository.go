package repositories

import (
	"database/sql"
	"errors"
	"time"

	"ayvcodr/internal/models"
)

type EndpointRepository interface {
	// Upsert: повторная регистрация заменяет привязанную операцию.
	Upsert(endpoint *models.Endpoint) error
	GetByAccount(accountID int) (*models.Endpoint, error)
	List() ([]*models.Endpoint, error)
	TouchUsage(id int, at time.Time) error
	DeleteByAccount(accountID int) error
	CountByStatus(status string) (int, error)
}

type endpointRepository struct {
	DB *sql.DB
}

func NewEndpointRepository(db *sql.DB) EndpointRepository {
	return &endpointRepository{DB: db}
}

func (r *endpointRepository) Upsert(endpoint *models.Endpoint) error {
	const q = `
		INSERT INTO endpoints (account_id, operation, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id)
		DO UPDATE SET operation = EXCLUDED.operation, status = EXCLUDED.status
		RETURNING id, created_at, last_used
	`
	return r.DB.QueryRow(q, endpoint.AccountID, endpoint.Operation, endpoint.Status).
		Scan(&endpoint.ID, &endpoint.CreatedAt, &endpoint.LastUsed)
}

func (r *endpointRepository) GetByAccount(accountID int) (*models.Endpoint, error) {
	const q = `
		SELECT id, account_id, operation, status, created_at, last_used
		FROM endpoints
		WHERE account_id = $1
	`
	e := &models.Endpoint{}
	err := r.DB.QueryRow(q, accountID).Scan(
		&e.ID, &e.AccountID, &e.Operation, &e.Status, &e.CreatedAt, &e.LastUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *endpointRepository) List() ([]*models.Endpoint, error) {
	const q = `
		SELECT id, account_id, operation, status, created_at, last_used
		FROM endpoints
		ORDER BY id
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Endpoint
	for rows.Next() {
		e := &models.Endpoint{}
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Operation, &e.Status, &e.CreatedAt, &e.LastUsed); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *endpointRepository) TouchUsage(id int, at time.Time) error {
	_, err := r.DB.Exec(`UPDATE endpoints SET last_used = $1 WHERE id = $2`, at, id)
	return err
}

func (r *endpointRepository) DeleteByAccount(accountID int) error {
	_, err := r.DB.Exec(`DELETE FROM endpoints WHERE account_id = $1`, accountID)
	return err
}

func (r *endpointRepository) CountByStatus(status string) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM endpoints WHERE status = $1`, status).Scan(&c)
	return c, err
}
