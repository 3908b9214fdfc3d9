package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/streamvault/panel-api/internal/model"
)

// AdminRepo reads and updates rows of the 'admins' table.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

const adminCols = "id,name,email,password,active,last_access,created_at"

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+adminCols+" FROM admins WHERE email=? LIMIT 1", email))
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+adminCols+" FROM admins WHERE id=? LIMIT 1", id))
}

// TouchLastAccess stamps the admin's last successful login.
func (r *AdminRepo) TouchLastAccess(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE admins SET last_access=NOW() WHERE id=?", id)
	return err
}

func (r *AdminRepo) scanOne(row *sql.Row) (model.Admin, error) {
	var (
		a          model.Admin
		lastAccess sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Active, &lastAccess, &a.CreatedAt)
	if err != nil {
		return model.Admin{}, err
	}
	if lastAccess.Valid {
		t := lastAccess.Time.UTC()
		a.LastAccess = &t
	}
	return a, nil
}
