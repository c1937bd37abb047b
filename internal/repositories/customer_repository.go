package repositories

import (
	"database/sql"
	"strings"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r CustomerRepository) List(search string) ([]models.Customer, error) {
	where := "1=1"
	args := []any{}
	if q := strings.TrimSpace(search); q != "" {
		where = "(c.name LIKE ? OR c.email LIKE ? OR c.phone LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	rows, err := r.db().Query(`
		SELECT c.id, c.name, COALESCE(c.email, ''), COALESCE(c.phone, ''),
		       COUNT(b.id),
		       COALESCE(DATE_FORMAT(c.created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM customers c
		LEFT JOIN bookings b ON b.customer_id = c.id
		WHERE `+where+`
		GROUP BY c.id, c.name, c.email, c.phone, c.created_at
		ORDER BY c.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BookingCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r CustomerRepository) GetByID(id int64) (models.Customer, error) {
	var c models.Customer
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM customers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "customer", Err: err}
	}
	return c, err
}

func (r CustomerRepository) Create(c models.Customer) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO customers (name, email, phone, created_at)
		VALUES (?, ?, ?, NOW())
	`, c.Name, intdb.NullIfEmpty(c.Email), intdb.NullIfEmpty(c.Phone))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CustomerRepository) Update(c models.Customer) error {
	_, err := r.db().Exec(`
		UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?
	`, c.Name, intdb.NullIfEmpty(c.Email), intdb.NullIfEmpty(c.Phone), c.ID)
	return err
}

func (r CustomerRepository) Delete(id int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE customer_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{Resource: "customer", Msg: "bookings still reference this customer"}
	}
	res, err := r.db().Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}

// GetOrCreateByEmail reuses an existing customer for public bookings keyed
// by email, creating one inside the caller's transaction otherwise.
func (r CustomerRepository) GetOrCreateByEmail(tx *sql.Tx, c models.Customer) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if email != "" {
		var id int64
		err := tx.QueryRow(`SELECT id FROM customers WHERE email = ? LIMIT 1`, email).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}
	res, err := tx.Exec(`
		INSERT INTO customers (name, email, phone, created_at)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), NOW())
	`, c.Name, email, strings.TrimSpace(c.Phone))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
