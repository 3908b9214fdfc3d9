package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/streamvault/panel-api/internal/model"
)

// ProviderRepo reads rows of the 'providers' table and the reseller-scoped
// 'provider_special_categories' table.
type ProviderRepo struct{ DB *sql.DB }

func NewProviderRepo(db *sql.DB) *ProviderRepo { return &ProviderRepo{DB: db} }

const providerCols = "id,code,name,email,password,logo,banner,url_primary,url_backup1,url_backup2,active,created_at"

// GetByCode fetches a provider by its public reseller code.
func (r *ProviderRepo) GetByCode(ctx context.Context, code string) (model.Provider, error) {
	return scanProvider(r.DB.QueryRowContext(ctx,
		"SELECT "+providerCols+" FROM providers WHERE code=? LIMIT 1",
		strings.TrimSpace(code)))
}

// GetByEmail fetches a provider by normalized login email.
func (r *ProviderRepo) GetByEmail(ctx context.Context, email string) (model.Provider, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanProvider(r.DB.QueryRowContext(ctx,
		"SELECT "+providerCols+" FROM providers WHERE email=? LIMIT 1", email))
}

// GetByID fetches a provider by id.
func (r *ProviderRepo) GetByID(ctx context.Context, id uint64) (model.Provider, error) {
	return scanProvider(r.DB.QueryRowContext(ctx,
		"SELECT "+providerCols+" FROM providers WHERE id=? LIMIT 1", id))
}

// ListSpecialCategories returns the reseller's curated categories in
// insertion order.
func (r *ProviderRepo) ListSpecialCategories(ctx context.Context, providerID uint64) ([]model.SpecialCategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,provider_id,content_type,category_type,category_id,category_name FROM provider_special_categories WHERE provider_id=? ORDER BY id",
		providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SpecialCategory
	for rows.Next() {
		var c model.SpecialCategory
		if err := rows.Scan(&c.ID, &c.ProviderID, &c.ContentType, &c.CategoryType, &c.CategoryID, &c.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanProvider(row *sql.Row) (model.Provider, error) {
	var (
		p                               model.Provider
		logo, banner, backup1, backup2  sql.NullString
	)
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Email, &p.PasswordHash, &logo, &banner,
		&p.URLPrimary, &backup1, &backup2, &p.Active, &p.CreatedAt)
	if err != nil {
		return model.Provider{}, err
	}
	p.Logo = logo.String
	p.Banner = banner.String
	p.URLBackup1 = backup1.String
	p.URLBackup2 = backup2.String
	return p, nil
}
