package repositories

import (
	"database/sql"
	"strings"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

type BookingFilter struct {
	Search string
	Status string
	SpotID int64
}

const bookingColumns = `
	b.id,
	b.reference,
	b.spot_id,
	COALESCE(s.name, ''),
	COALESCE(t.name, ''),
	b.customer_id,
	COALESCE(c.name, ''),
	b.seats,
	b.total_amount,
	b.status,
	COALESCE(b.channel, ''),
	COALESCE(b.notes, ''),
	COALESCE(DATE_FORMAT(b.created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(b.updated_at, '%Y-%m-%d %H:%i:%s'), '')`

const bookingJoins = `
	FROM bookings b
	LEFT JOIN spots s ON s.id = b.spot_id
	LEFT JOIN tours t ON t.id = s.tour_id
	LEFT JOIN customers c ON c.id = b.customer_id`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	err := scan(
		&b.ID,
		&b.Reference,
		&b.SpotID,
		&b.SpotName,
		&b.TourName,
		&b.CustomerID,
		&b.CustomerName,
		&b.Seats,
		&b.TotalAmount,
		&b.Status,
		&b.Channel,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r BookingRepository) List(f BookingFilter) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}

	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, "(b.reference LIKE ? OR c.name LIKE ? OR t.name LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		where = append(where, "b.status = ?")
		args = append(args, st)
	}
	if f.SpotID > 0 {
		where = append(where, "b.spot_id = ?")
		args = append(args, f.SpotID)
	}

	rows, err := r.db().Query(`SELECT `+bookingColumns+bookingJoins+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY b.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+bookingJoins+`
		WHERE b.id = ?
		LIMIT 1
	`, id)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return b, err
}

// Create inserts the booking row inside the caller's transaction so seat
// reservation and booking creation commit or roll back together.
func (r BookingRepository) Create(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings (reference, spot_id, customer_id, seats, total_amount, status, channel, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NOW())
	`, b.Reference, b.SpotID, b.CustomerID, b.Seats, b.TotalAmount, b.Status, b.Channel, b.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus transitions a booking inside the caller's transaction.
func (r BookingRepository) UpdateStatus(tx Execer, id int64, status string) error {
	res, err := tx.Exec(`
		UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?
	`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) UpdateNotes(id int64, notes string) error {
	_, err := r.db().Exec(`
		UPDATE bookings SET notes = NULLIF(?, ''), updated_at = NOW() WHERE id = ?
	`, notes, id)
	return err
}

// CountActiveBySpot counts non-cancelled bookings referencing a spot, used
// to refuse spot deletion while bookings still point at it.
func (r BookingRepository) CountActiveBySpot(spotID int64) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM bookings WHERE spot_id = ? AND status <> 'cancelled'
	`, spotID).Scan(&n)
	return n, err
}
