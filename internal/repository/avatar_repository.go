package repository

import (
	"context"
	"database/sql"

	"github.com/streamvault/panel-api/internal/model"
)

// AvatarRepo reads the global avatar catalog.
type AvatarRepo struct{ DB *sql.DB }

func NewAvatarRepo(db *sql.DB) *AvatarRepo { return &AvatarRepo{DB: db} }

// ListAll returns the whole catalog grouped by category then display order.
func (r *AvatarRepo) ListAll(ctx context.Context) ([]model.Avatar, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,file,category,`order` FROM avatars ORDER BY category ASC, `order` ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Avatar
	for rows.Next() {
		var a model.Avatar
		if err := rows.Scan(&a.ID, &a.Name, &a.File, &a.Category, &a.Order); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
