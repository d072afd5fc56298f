package repositories

import (
	"database/sql"

	"ayvcodr/internal/models"
)

// DailyUsage - агрегат по календарному дню для трендов дашборда.
type DailyUsage struct {
	Date       string  `json:"date"`
	Calls      int     `json:"calls"`
	AvgLatency float64 `json:"avg_latency"`
}

type CallLogRepository interface {
	Create(entry *models.APICallLog) error
	CountByAccount(accountID int) (int, error)
	CountTotal() (int, error)
	AvgLatency() (float64, error)
	UsageTrend(days int) ([]DailyUsage, error)
	// UsageByUsername - счётчики вызовов в разрезе аккаунтов, ключ - username.
	UsageByUsername() (map[string]int, error)
	DeleteByAccount(accountID int) error
}

type callLogRepository struct {
	DB *sql.DB
}

func NewCallLogRepository(db *sql.DB) CallLogRepository {
	return &callLogRepository{DB: db}
}

func (r *callLogRepository) Create(entry *models.APICallLog) error {
	const q = `
		INSERT INTO api_call_logs (account_id, endpoint_id, timestamp, latency_ms, status_code, path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRow(q,
		entry.AccountID,
		entry.EndpointID,
		entry.Timestamp,
		entry.LatencyMS,
		entry.StatusCode,
		entry.Path,
	).Scan(&entry.ID)
}

func (r *callLogRepository) CountByAccount(accountID int) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM api_call_logs WHERE account_id = $1`, accountID).Scan(&c)
	return c, err
}

func (r *callLogRepository) CountTotal() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM api_call_logs`).Scan(&c)
	return c, err
}

func (r *callLogRepository) AvgLatency() (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRow(`SELECT AVG(latency_ms) FROM api_call_logs`).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (r *callLogRepository) UsageTrend(days int) ([]DailyUsage, error) {
	const q = `
		SELECT DATE(timestamp)::text AS date,
		       COUNT(*)              AS calls,
		       COALESCE(AVG(latency_ms), 0) AS avg_latency
		FROM api_call_logs
		GROUP BY DATE(timestamp)
		ORDER BY DATE(timestamp) DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []DailyUsage
	for rows.Next() {
		var d DailyUsage
		if err := rows.Scan(&d.Date, &d.Calls, &d.AvgLatency); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *callLogRepository) UsageByUsername() (map[string]int, error) {
	const q = `
		SELECT a.username, COUNT(*)
		FROM api_call_logs l
		JOIN accounts a ON a.id = l.account_id
		GROUP BY a.username
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := map[string]int{}
	for rows.Next() {
		var (
			username string
			count    int
		)
		if err := rows.Scan(&username, &count); err != nil {
			return nil, err
		}
		res[username] = count
	}
	return res, rows.Err()
}

func (r *callLogRepository) DeleteByAccount(accountID int) error {
	_, err := r.DB.Exec(`DELETE FROM api_call_logs WHERE account_id = $1`, accountID)
	return err
}
