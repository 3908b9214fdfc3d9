package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/streamvault/panel-api/internal/model"
)

// TokenRepo persists refresh tokens for all three actor kinds.  Tokens are
// stored as their raw opaque string (UNIQUE column); a rotation revokes the
// presented row and inserts a fresh one, so each row is usable at most once.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a refresh token row for the given actor.
func (r *TokenRepo) Store(ctx context.Context, userType string, userID uint64, token string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_type, user_id, token, expires_at) VALUES (?,?,?,?)",
		userType, userID, token, expiresAt)
	return err
}

// Lookup returns the row matching the raw token string.  Missing, revoked
// and expired rows come back as distinct sentinel errors so callers can log
// the reason, even though the HTTP surface reports all three identically.
func (r *TokenRepo) Lookup(ctx context.Context, token string) (model.RefreshToken, error) {
	var (
		t       model.RefreshToken
		revoked bool
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_type,user_id,token,expires_at,revoked,created_at FROM refresh_tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.UserType, &t.UserID, &t.Token, &t.ExpiresAt, &revoked, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return model.RefreshToken{}, ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	t.Revoked = revoked
	if t.Revoked {
		return model.RefreshToken{}, ErrTokenRevoked
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		return model.RefreshToken{}, ErrTokenExpired
	}
	return t, nil
}

// Revoke marks the row matching the raw token string as revoked.  Revoking
// an already-revoked or unknown token is not an error; logout relies on
// this being idempotent.
func (r *TokenRepo) Revoke(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked=1 WHERE token=? AND revoked=0",
		token)
	return err
}
