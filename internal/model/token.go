package model

import "time"

// RefreshToken models an entry in the `refresh_tokens` table.  Tokens are
// opaque 64-character random strings, single-use: a refresh revokes the
// presented row and inserts a brand-new one.  Rows are inert once revoked
// or past ExpiresAt.
//
// Fields:
//  ID        – primary key identifier.
//  UserType  – actor kind owning the token ("admin" | "provedor" | "usuario").
//  UserID    – actor id within its kind.
//  Token     – raw opaque token string (unique).
//  ExpiresAt – expiration timestamp.
//  Revoked   – set on rotation or logout.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64    // refresh_tokens.id
    UserType  string    // refresh_tokens.user_type
    UserID    uint64    // refresh_tokens.user_id
    Token     string    // refresh_tokens.token
    ExpiresAt time.Time // refresh_tokens.expires_at
    Revoked   bool      // refresh_tokens.revoked
    CreatedAt time.Time // refresh_tokens.created_at
}
