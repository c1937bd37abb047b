package repositories

import (
	"database/sql"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const paymentColumns = `
	id, booking_id, amount, method, status, transaction_ref,
	COALESCE(DATE_FORMAT(paid_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanPayment(scan func(dest ...any) error) (models.Payment, error) {
	var p models.Payment
	err := scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &p.TransactionRef, &p.PaidAt, &p.CreatedAt)
	return p, err
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE booking_id = ?
		ORDER BY id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.db().QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ?
		LIMIT 1
	`, id)
	p, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "payment", Err: err}
	}
	return p, err
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, amount, method, status, transaction_ref, paid_at, created_at)
		VALUES (?, ?, ?, ?, ?, CASE WHEN ? = 'COMPLETED' THEN NOW() ELSE NULL END, NOW())
	`, p.BookingID, p.Amount, p.Method, p.Status, p.TransactionRef, p.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`
		UPDATE payments
		SET status = ?,
		    paid_at = CASE WHEN ? = 'COMPLETED' AND paid_at IS NULL THEN NOW() ELSE paid_at END
		WHERE id = ?
	`, status, status, id)
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows for no-op updates, so existence is
	// checked separately rather than inferred from RowsAffected.
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM payments WHERE id = ? LIMIT 1`, id).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "payment"}
		}
	}
	return nil
}

// CompletedTotal sums completed payments for a booking, shown next to the
// booking total on the detail page.
func (r PaymentRepository) CompletedTotal(bookingID int64) (int64, error) {
	var total int64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = ? AND status = 'COMPLETED'
	`, bookingID).Scan(&total)
	return total, err
}
