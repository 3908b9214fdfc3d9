package repository

import (
	"context"
	"database/sql"

	"github.com/streamvault/panel-api/internal/model"
)

// UserRepo persists end users materialized from remote logins.  The
// (provider_id, provider_login) pair is the natural key; a UNIQUE index on
// it makes concurrent duplicate logins resolve as last-writer-wins upserts
// without extra locking.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UpsertUser carries everything a successful remote login writes locally.
type UpsertUser struct {
	ProviderID    uint64
	ProviderCode  string
	ProviderLogin string
	Name          string
	ProviderData  []byte // serialized model.ProviderData
}

// Upsert creates the user on first login or refreshes it on every
// subsequent one: last_login is touched, a previously deactivated account
// is reactivated, and the remote snapshot is overwritten.  The existing
// row's id is returned via the LAST_INSERT_ID(id) trick.
func (r *UserRepo) Upsert(ctx context.Context, u UpsertUser) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (provider_id, provider_code, provider_login, name, provider_data, active, last_login)
		VALUES (?,?,?,?,?,1,NOW())
		ON DUPLICATE KEY UPDATE
			id=LAST_INSERT_ID(id),
			name=VALUES(name),
			provider_data=VALUES(provider_data),
			active=1,
			last_login=NOW()`,
		u.ProviderID, u.ProviderCode, u.ProviderLogin, u.Name, u.ProviderData)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var (
		u         model.User
		data      sql.NullString
		language  sql.NullString
		lastLogin sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,provider_id,provider_code,provider_login,name,provider_data,language,parental_active,active,last_login,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.ProviderID, &u.ProviderCode, &u.ProviderLogin, &u.Name,
		&data, &language, &u.ParentalActive, &u.Active, &lastLogin, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	if data.Valid {
		u.ProviderData = []byte(data.String)
	}
	u.Language = language.String
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		u.LastLogin = &t
	}
	return u, nil
}
