package repositories

import (
	"database/sql"

	"tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/domain/models"
)

// ProfileRepository manages the single operator_profile row.
type ProfileRepository struct {
	DB *sql.DB
}

func (r ProfileRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r ProfileRepository) Get() (models.OperatorProfile, error) {
	var p models.OperatorProfile
	err := r.db().QueryRow(`
		SELECT id, company_name, COALESCE(tagline, ''), COALESCE(about, ''),
		       COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
		       COALESCE(website, ''), COALESCE(logo_url, ''),
		       COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM operator_profile
		ORDER BY id ASC
		LIMIT 1
	`).Scan(&p.ID, &p.CompanyName, &p.Tagline, &p.About, &p.Email, &p.Phone, &p.Address, &p.Website, &p.LogoURL, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		// a fresh install has no profile yet; return an empty one
		return models.OperatorProfile{}, nil
	}
	return p, err
}

func (r ProfileRepository) Upsert(p models.OperatorProfile) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}
	if existing.ID == 0 {
		_, err := r.db().Exec(`
			INSERT INTO operator_profile (company_name, tagline, about, email, phone, address, website, logo_url, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		`, p.CompanyName, intdb.NullIfEmpty(p.Tagline), intdb.NullIfEmpty(p.About), intdb.NullIfEmpty(p.Email),
			intdb.NullIfEmpty(p.Phone), intdb.NullIfEmpty(p.Address), intdb.NullIfEmpty(p.Website), intdb.NullIfEmpty(p.LogoURL))
		return err
	}
	_, err = r.db().Exec(`
		UPDATE operator_profile
		SET company_name = ?, tagline = ?, about = ?, email = ?, phone = ?, address = ?, website = ?, logo_url = ?, updated_at = NOW()
		WHERE id = ?
	`, p.CompanyName, intdb.NullIfEmpty(p.Tagline), intdb.NullIfEmpty(p.About), intdb.NullIfEmpty(p.Email),
		intdb.NullIfEmpty(p.Phone), intdb.NullIfEmpty(p.Address), intdb.NullIfEmpty(p.Website), intdb.NullIfEmpty(p.LogoURL), existing.ID)
	return err
}
