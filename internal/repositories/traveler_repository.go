package repositories

import (
	"database/sql"
	"strings"
	"time"

	"tourops/internal/config"
	"tourops/internal/domain/models"
	"tourops/internal/utils"
)

type TravelerRepository struct {
	DB *sql.DB
}

func (r TravelerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r TravelerRepository) ListByBooking(bookingID int64) ([]models.Traveler, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, full_name,
		       COALESCE(nationality, ''),
		       COALESCE(DATE_FORMAT(date_of_birth, '%Y-%m-%d'), ''),
		       COALESCE(requirements, '')
		FROM travelers
		WHERE booking_id = ?
		ORDER BY id ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	list := []models.Traveler{}
	for rows.Next() {
		var t models.Traveler
		if err := rows.Scan(&t.ID, &t.BookingID, &t.FullName, &t.Nationality, &t.DateOfBirth, &t.Requirements); err != nil {
			return nil, err
		}
		t.Age = utils.AgeAt(t.DateOfBirth, now)
		list = append(list, t)
	}
	return list, rows.Err()
}

// ReplaceForBooking swaps the traveler list of a booking inside the caller's
// transaction. The dashboard edits travelers as a whole list, not row by row.
func (r TravelerRepository) ReplaceForBooking(tx Execer, bookingID int64, travelers []models.Traveler) error {
	if _, err := tx.Exec(`DELETE FROM travelers WHERE booking_id = ?`, bookingID); err != nil {
		return err
	}
	for _, t := range travelers {
		name := strings.TrimSpace(t.FullName)
		if name == "" {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO travelers (booking_id, full_name, nationality, date_of_birth, requirements, created_at)
			VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NOW())
		`, bookingID, name, strings.TrimSpace(t.Nationality), strings.TrimSpace(t.DateOfBirth), strings.TrimSpace(t.Requirements))
		if err != nil {
			return err
		}
	}
	return nil
}
