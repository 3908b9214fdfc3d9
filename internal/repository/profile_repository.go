package repository

import (
	"context"
	"database/sql"

	"github.com/streamvault/panel-api/internal/model"
)

// ProfileRepo manages the sub-identities under an end user.  The first
// profile ever created for a user is the "principal" one and is protected
// from deletion elsewhere in the panel.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileCols = "id,user_id,name,avatar,type,is_kid,pin_protected,active,created_at"

// ListActive returns the user's active profiles, oldest first.
func (r *ProfileRepo) ListActive(ctx context.Context, userID uint64) ([]model.Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE user_id=? AND active=1 ORDER BY created_at ASC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.Type,
			&p.IsKid, &p.PinProtected, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreatePrincipal inserts the default "principal" profile for a user who
// has none, seeded with the first catalog avatar.
func (r *ProfileRepo) CreatePrincipal(ctx context.Context, userID uint64, name string) (model.Profile, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (user_id, name, avatar, type, is_kid, pin_protected, active) VALUES (?,?,?,?,0,0,1)",
		userID, name, "1", "principal")
	if err != nil {
		return model.Profile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		ID:     uint64(id),
		UserID: userID,
		Name:   name,
		Avatar: "1",
		Type:   "principal",
		Active: true,
	}, nil
}
