package repositories

import (
	"database/sql"
	"strings"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

// SpotRepository wraps DB access for tour spots. Seat counters are only ever
// mutated through ReserveSeats/ReleaseSeats so the capacity ceiling holds
// under concurrent bookings.
type SpotRepository struct {
	DB *sql.DB
}

func (r SpotRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// Execer is the statement surface shared by *sql.DB and *sql.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type SpotFilter struct {
	Search string
	Status string
	TourID int64
}

const spotColumns = `
	s.id,
	s.tour_id,
	COALESCE(t.name, ''),
	s.name,
	COALESCE(DATE_FORMAT(s.departure_date, '%Y-%m-%d'), ''),
	COALESCE(DATE_FORMAT(s.return_date, '%Y-%m-%d'), ''),
	s.max_seats,
	s.booked_seats,
	COALESCE(s.status, 'Available'),
	COALESCE(s.notes, ''),
	COALESCE(DATE_FORMAT(s.created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanSpot(scan func(dest ...any) error) (models.Spot, error) {
	var s models.Spot
	err := scan(
		&s.ID,
		&s.TourID,
		&s.TourName,
		&s.Name,
		&s.DepartureDate,
		&s.ReturnDate,
		&s.MaxSeats,
		&s.BookedSeats,
		&s.Status,
		&s.Notes,
		&s.CreatedAt,
	)
	return s, err
}

func (r SpotRepository) List(f SpotFilter) ([]models.Spot, error) {
	where := []string{"1=1"}
	args := []any{}

	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, "(s.name LIKE ? OR t.name LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		where = append(where, "s.status = ?")
		args = append(args, st)
	}
	if f.TourID > 0 {
		where = append(where, "s.tour_id = ?")
		args = append(args, f.TourID)
	}

	rows, err := r.db().Query(`
		SELECT `+spotColumns+`
		FROM spots s
		LEFT JOIN tours t ON t.id = s.tour_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY s.departure_date ASC, s.id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Spot{}
	for rows.Next() {
		s, err := scanSpot(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r SpotRepository) GetByID(id int64) (models.Spot, error) {
	row := r.db().QueryRow(`
		SELECT `+spotColumns+`
		FROM spots s
		LEFT JOIN tours t ON t.id = s.tour_id
		WHERE s.id = ?
		LIMIT 1
	`, id)
	s, err := scanSpot(row.Scan)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "spot", Err: err}
	}
	return s, err
}

func (r SpotRepository) Create(s models.Spot) (int64, error) {
	notes := any(nil)
	if strings.TrimSpace(s.Notes) != "" {
		notes = s.Notes
	}
	res, err := r.db().Exec(`
		INSERT INTO spots (tour_id, name, departure_date, return_date, max_seats, booked_seats, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?, NOW())
	`, s.TourID, s.Name, s.DepartureDate, intdb.NullIfEmpty(s.ReturnDate), s.MaxSeats, domain.SpotStatusAvailable, notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r SpotRepository) Update(s models.Spot) error {
	res, err := r.db().Exec(`
		UPDATE spots
		SET name = ?, departure_date = ?, return_date = ?, max_seats = ?, notes = ?,
		    status = CASE WHEN status = 'Departed' THEN status
		                  WHEN booked_seats >= ? THEN 'Full'
		                  ELSE 'Available' END,
		    updated_at = NOW()
		WHERE id = ?
	`, s.Name, s.DepartureDate, intdb.NullIfEmpty(s.ReturnDate), s.MaxSeats, intdb.NullIfEmpty(s.Notes), s.MaxSeats, s.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// rows can legitimately be 0 when nothing changed; verify existence
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM spots WHERE id = ? LIMIT 1`, s.ID).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "spot"}
		}
	}
	return nil
}

func (r SpotRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM spots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "spot"}
	}
	return nil
}

// ReserveSeats increments booked_seats inside the caller's transaction,
// refusing the increment when it would exceed max_seats or the spot has
// already departed. Zero rows affected means the reservation lost.
func (r SpotRepository) ReserveSeats(tx Execer, spotID int64, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "must be positive"}
	}
	// status is assigned before booked_seats: MySQL applies SET clauses left
	// to right against already-updated column values.
	res, err := tx.Exec(`
		UPDATE spots
		SET status = CASE WHEN booked_seats + ? >= max_seats THEN 'Full' ELSE 'Available' END,
		    booked_seats = booked_seats + ?,
		    updated_at = NOW()
		WHERE id = ?
		  AND status <> 'Departed'
		  AND booked_seats + ? <= max_seats
	`, seats, seats, spotID, seats)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "spot", Msg: "not enough seats left"}
	}
	return nil
}

// ReleaseSeats gives seats back on cancellation. Counters never go below
// zero even against inconsistent legacy data.
func (r SpotRepository) ReleaseSeats(tx Execer, spotID int64, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "must be positive"}
	}
	_, err := tx.Exec(`
		UPDATE spots
		SET status = CASE WHEN status = 'Departed' THEN status
		                  WHEN GREATEST(booked_seats - ?, 0) >= max_seats THEN 'Full'
		                  ELSE 'Available' END,
		    booked_seats = GREATEST(booked_seats - ?, 0),
		    updated_at = NOW()
		WHERE id = ?
	`, seats, seats, spotID)
	return err
}

// MarkDeparted flips spots whose departure date has passed. Returns the
// number of spots transitioned.
func (r SpotRepository) MarkDeparted(today string) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE spots
		SET status = 'Departed', updated_at = NOW()
		WHERE status <> 'Departed'
		  AND departure_date < ?
	`, today)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BookingSummaries loads per-booking traveler counts for a set of spots in
// one round trip, keyed by spot id. Cancelled bookings are excluded so the
// capacity view reconciles against live reservations only.
func (r SpotRepository) BookingSummaries(spotIDs []int64) (map[int64][]domain.BookingSummary, error) {
	out := map[int64][]domain.BookingSummary{}
	if len(spotIDs) == 0 {
		return out, nil
	}

	ph := make([]string, len(spotIDs))
	args := make([]any, len(spotIDs))
	for i, id := range spotIDs {
		ph[i] = "?"
		args[i] = id
	}

	rows, err := r.db().Query(`
		SELECT b.spot_id, b.id, b.status, b.seats, COUNT(tr.id)
		FROM bookings b
		LEFT JOIN travelers tr ON tr.booking_id = b.id
		WHERE b.spot_id IN (`+strings.Join(ph, ",")+`)
		  AND b.status <> 'cancelled'
		GROUP BY b.spot_id, b.id, b.status, b.seats
		ORDER BY b.id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var spotID int64
		var s domain.BookingSummary
		if err := rows.Scan(&spotID, &s.ID, &s.Status, &s.Seats, &s.TravelerCount); err != nil {
			return nil, err
		}
		out[spotID] = append(out[spotID], s)
	}
	return out, rows.Err()
}
