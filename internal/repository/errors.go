// Package repository implements data access over MySQL.  Sentinel errors
// defined here let handlers distinguish failure scenarios without parsing
// driver errors; row-not-found is reported as database/sql.ErrNoRows as
// elsewhere in the codebase.
package repository

import "errors"

// ErrTokenNotFound is returned when a refresh token string matches no row.
var ErrTokenNotFound = errors.New("refresh token not found")

// ErrTokenRevoked is returned when the matching refresh token row has been
// revoked by a previous rotation or logout.  Kept distinct from
// ErrTokenExpired for server-side logs only; the HTTP surface reports both
// identically.
var ErrTokenRevoked = errors.New("refresh token revoked")

// ErrTokenExpired is returned when the matching refresh token row is past
// its expiry.
var ErrTokenExpired = errors.New("refresh token expired")
