package repositories

import (
	"database/sql"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, username, email, COALESCE(phone, ''), role, status,
		       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, username, email, COALESCE(phone, ''), role, status,
		       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

// GetCredentials loads the user and its password hash for login by email or
// username.
func (r UserRepository) GetCredentials(identity string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRow(`
		SELECT id, name, username, email, COALESCE(phone, ''), role, status, password_hash
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1
	`, identity, identity).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &hash)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, hash, err
}

func (r UserRepository) Exists(email, username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'active', NOW(), NOW())
	`, u.Name, u.Username, u.Email, intdb.NullIfEmpty(u.Phone), passwordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) Update(u models.User) error {
	res, err := r.db().Exec(`
		UPDATE users SET name = ?, phone = ?, role = ?, status = ?, updated_at = NOW() WHERE id = ?
	`, u.Name, intdb.NullIfEmpty(u.Phone), u.Role, u.Status, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db().QueryRow(`SELECT 1 FROM users WHERE id = ? LIMIT 1`, u.ID).Scan(&one); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "user"}
		}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
