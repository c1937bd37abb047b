package repositories

import (
	"database/sql"
	"strings"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r ReviewRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

type ReviewFilter struct {
	Status string
	TourID int64
}

func (r ReviewRepository) List(f ReviewFilter) ([]models.Review, error) {
	where := []string{"1=1"}
	args := []any{}
	if st := strings.TrimSpace(f.Status); st != "" {
		where = append(where, "rv.status = ?")
		args = append(args, st)
	}
	if f.TourID > 0 {
		where = append(where, "rv.tour_id = ?")
		args = append(args, f.TourID)
	}

	rows, err := r.db().Query(`
		SELECT rv.id, rv.tour_id, COALESCE(t.name, ''), rv.customer_name, rv.rating,
		       COALESCE(rv.comment, ''), rv.status,
		       COALESCE(DATE_FORMAT(rv.created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM reviews rv
		LEFT JOIN tours t ON t.id = rv.tour_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY rv.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.TourID, &rv.TourName, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, rv)
	}
	return list, rows.Err()
}

func (r ReviewRepository) Create(rv models.Review) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO reviews (tour_id, customer_name, rating, comment, status, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?, NOW())
	`, rv.TourID, rv.CustomerName, rv.Rating, rv.Comment, models.ReviewStatusPending)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ReviewRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE reviews SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM reviews WHERE id = ? LIMIT 1`, id).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "review"}
		}
	}
	return nil
}

func (r ReviewRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "review"}
	}
	return nil
}

// ListApprovedByTour feeds the public tour detail page.
func (r ReviewRepository) ListApprovedByTour(tourID int64) ([]models.Review, error) {
	return r.List(ReviewFilter{Status: models.ReviewStatusApproved, TourID: tourID})
}
