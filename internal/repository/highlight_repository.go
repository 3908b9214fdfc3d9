package repository

import (
	"context"
	"database/sql"

	"github.com/streamvault/panel-api/internal/model"
)

// HighlightRepo manages reseller-curated featured categories.  Every
// statement is scoped by provider_id so one reseller can never touch
// another's rows.
type HighlightRepo struct{ DB *sql.DB }

func NewHighlightRepo(db *sql.DB) *HighlightRepo { return &HighlightRepo{DB: db} }

const highlightCols = "id,provider_id,type,category_name,category_id,logo_url,`order`,active,created_at"

// ListByProvider returns the reseller's highlights, optionally filtered by
// content type, in display order.
func (r *HighlightRepo) ListByProvider(ctx context.Context, providerID uint64, typ string) ([]model.Highlight, error) {
	query := "SELECT " + highlightCols + " FROM highlights WHERE provider_id=?"
	args := []any{providerID}
	if typ != "" {
		query += " AND type=?"
		args = append(args, typ)
	}
	query += " ORDER BY `order` ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Highlight
	for rows.Next() {
		var h model.Highlight
		if err := rows.Scan(&h.ID, &h.ProviderID, &h.Type, &h.CategoryName, &h.CategoryID,
			&h.LogoURL, &h.Order, &h.Active, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Get fetches one highlight owned by the reseller.
func (r *HighlightRepo) Get(ctx context.Context, providerID, id uint64) (model.Highlight, error) {
	var h model.Highlight
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+highlightCols+" FROM highlights WHERE id=? AND provider_id=? LIMIT 1",
		id, providerID).Scan(&h.ID, &h.ProviderID, &h.Type, &h.CategoryName, &h.CategoryID,
		&h.LogoURL, &h.Order, &h.Active, &h.CreatedAt)
	return h, err
}

// Create inserts a highlight and returns its id.
func (r *HighlightRepo) Create(ctx context.Context, h model.Highlight) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO highlights (provider_id, type, category_name, category_id, logo_url, `order`, active) VALUES (?,?,?,?,?,?,1)",
		h.ProviderID, h.Type, h.CategoryName, h.CategoryID, h.LogoURL, h.Order)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a highlight's mutable fields, scoped by owner.  Existence
// is checked by callers via Get; RowsAffected is useless here because the
// driver reports rows changed, not rows matched.
func (r *HighlightRepo) Update(ctx context.Context, h model.Highlight) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE highlights SET type=?, category_name=?, category_id=?, logo_url=?, `order`=?, active=? WHERE id=? AND provider_id=?",
		h.Type, h.CategoryName, h.CategoryID, h.LogoURL, h.Order, h.Active, h.ID, h.ProviderID)
	return err
}

// Delete removes a highlight, scoped by owner.
func (r *HighlightRepo) Delete(ctx context.Context, providerID, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM highlights WHERE id=? AND provider_id=?", id, providerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
