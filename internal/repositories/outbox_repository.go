package repositories

import (
	"database/sql"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

// OutboxRepository queues emails for an external delivery worker; this
// service never talks SMTP itself.
type OutboxRepository struct {
	DB *sql.DB
}

func (r OutboxRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r OutboxRepository) Enqueue(m models.EmailOutbox) (int64, error) {
	db := r.db()
	if !intdb.HasTable(db, "email_outbox") {
		return 0, domain.NotFoundError{Resource: "email_outbox"}
	}

	// older installs ship without the scope column
	if intdb.HasColumn(db, "email_outbox", "scope") {
		res, err := db.Exec(`
			INSERT INTO email_outbox (spot_id, scope, subject, body, status, created_at)
			VALUES (?, ?, ?, ?, 'queued', NOW())
		`, m.SpotID, m.Scope, m.Subject, m.Body)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	res, err := db.Exec(`
		INSERT INTO email_outbox (spot_id, subject, body, status, created_at)
		VALUES (?, ?, ?, 'queued', NOW())
	`, m.SpotID, m.Subject, m.Body)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r OutboxRepository) ListBySpot(spotID int64) ([]models.EmailOutbox, error) {
	rows, err := r.db().Query(`
		SELECT id, spot_id, scope, subject, body, status,
		       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM email_outbox
		WHERE spot_id = ?
		ORDER BY id DESC
	`, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.EmailOutbox{}
	for rows.Next() {
		var m models.EmailOutbox
		if err := rows.Scan(&m.ID, &m.SpotID, &m.Scope, &m.Subject, &m.Body, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
