package repositories

import (
	"database/sql"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r CategoryRepository) List() ([]models.Category, error) {
	rows, err := r.db().Query(`
		SELECT c.id, c.name, c.slug, COUNT(t.id)
		FROM categories c
		LEFT JOIN tours t ON t.category_id = c.id
		GROUP BY c.id, c.name, c.slug
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.TourCount); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r CategoryRepository) Create(c models.Category) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO categories (name, slug) VALUES (?, ?)`, c.Name, c.Slug)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CategoryRepository) Update(c models.Category) error {
	_, err := r.db().Exec(`UPDATE categories SET name = ?, slug = ? WHERE id = ?`, c.Name, c.Slug, c.ID)
	return err
}

func (r CategoryRepository) Delete(id int64) error {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM tours WHERE category_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{Resource: "category", Msg: "tours still reference this category"}
	}
	res, err := r.db().Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.NotFoundError{Resource: "category"}
	}
	return nil
}
