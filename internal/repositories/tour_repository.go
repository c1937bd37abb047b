package repositories

import (
	"database/sql"
	"strings"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type TourRepository struct {
	DB *sql.DB
}

func (r TourRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

type TourFilter struct {
	Search     string
	Status     string
	CategoryID int64
}

const tourColumns = `
	t.id,
	COALESCE(t.category_id, 0),
	COALESCE(c.name, ''),
	t.name,
	t.slug,
	COALESCE(t.summary, ''),
	COALESCE(t.description, ''),
	t.base_price,
	t.duration_days,
	t.status,
	COALESCE(r.rating, 0),
	COALESCE(DATE_FORMAT(t.created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(t.updated_at, '%Y-%m-%d %H:%i:%s'), '')`

const tourJoins = `
	FROM tours t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN (
		SELECT tour_id, AVG(rating) AS rating
		FROM reviews
		WHERE status = 'approved'
		GROUP BY tour_id
	) r ON r.tour_id = t.id`

func scanTour(scan func(dest ...any) error) (models.Tour, error) {
	var t models.Tour
	err := scan(
		&t.ID,
		&t.CategoryID,
		&t.CategoryName,
		&t.Name,
		&t.Slug,
		&t.Summary,
		&t.Description,
		&t.BasePrice,
		&t.DurationDays,
		&t.Status,
		&t.Rating,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r TourRepository) List(f TourFilter) ([]models.Tour, error) {
	where := []string{"1=1"}
	args := []any{}

	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where, "(t.name LIKE ? OR t.summary LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		where = append(where, "t.status = ?")
		args = append(args, st)
	}
	if f.CategoryID > 0 {
		where = append(where, "t.category_id = ?")
		args = append(args, f.CategoryID)
	}

	rows, err := r.db().Query(`SELECT `+tourColumns+tourJoins+`
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY t.id DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Tour{}
	for rows.Next() {
		t, err := scanTour(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r TourRepository) GetByID(id int64) (models.Tour, error) {
	row := r.db().QueryRow(`SELECT `+tourColumns+tourJoins+`
		WHERE t.id = ?
		LIMIT 1
	`, id)
	t, err := scanTour(row.Scan)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "tour", Err: err}
	}
	return t, err
}

func (r TourRepository) GetBySlug(slug string) (models.Tour, error) {
	row := r.db().QueryRow(`SELECT `+tourColumns+tourJoins+`
		WHERE t.slug = ?
		LIMIT 1
	`, slug)
	t, err := scanTour(row.Scan)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "tour", Err: err}
	}
	return t, err
}

func (r TourRepository) SlugExists(slug string, excludeID int64) (bool, error) {
	var one int
	err := r.db().QueryRow(`SELECT 1 FROM tours WHERE slug = ? AND id <> ? LIMIT 1`, slug, excludeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r TourRepository) Create(t models.Tour) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tours (category_id, name, slug, summary, description, base_price, duration_days, status, created_at)
		VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?, NOW())
	`, t.CategoryID, t.Name, t.Slug, intdb.NullIfEmpty(t.Summary), intdb.NullIfEmpty(t.Description), t.BasePrice, t.DurationDays, t.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TourRepository) Update(t models.Tour) error {
	_, err := r.db().Exec(`
		UPDATE tours
		SET category_id = NULLIF(?, 0), name = ?, slug = ?, summary = ?, description = ?,
		    base_price = ?, duration_days = ?, updated_at = NOW()
		WHERE id = ?
	`, t.CategoryID, t.Name, t.Slug, intdb.NullIfEmpty(t.Summary), intdb.NullIfEmpty(t.Description), t.BasePrice, t.DurationDays, t.ID)
	return err
}

func (r TourRepository) UpdateStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE tours SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM tours WHERE id = ? LIMIT 1`, id).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "tour"}
		}
	}
	return nil
}

func (r TourRepository) Delete(id int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM spots WHERE tour_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{Resource: "tour", Msg: "spots still reference this tour"}
	}
	res, err := r.db().Exec(`DELETE FROM tours WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "tour"}
	}
	return nil
}

// ListPublished feeds the public catalog.
func (r TourRepository) ListPublished() ([]models.Tour, error) {
	return r.List(TourFilter{Status: models.TourStatusPublished})
}
