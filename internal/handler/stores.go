package handler

import (
	"context"
	"time"

	"github.com/streamvault/panel-api/internal/model"
	"github.com/streamvault/panel-api/internal/queue"
	"github.com/streamvault/panel-api/internal/repository"
	"github.com/streamvault/panel-api/internal/xtream"
)

// Handlers depend on narrow store interfaces rather than concrete
// repositories so the flows can be tested against in-package fakes.  The
// repository types satisfy them as-is.

// AdminStore reads and touches administrator records.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (model.Admin, error)
	GetByID(ctx context.Context, id uint64) (model.Admin, error)
	TouchLastAccess(ctx context.Context, id uint64) error
}

// ProviderStore reads reseller records and their curated categories.
type ProviderStore interface {
	GetByCode(ctx context.Context, code string) (model.Provider, error)
	GetByEmail(ctx context.Context, email string) (model.Provider, error)
	GetByID(ctx context.Context, id uint64) (model.Provider, error)
	ListSpecialCategories(ctx context.Context, providerID uint64) ([]model.SpecialCategory, error)
}

// UserStore materializes end users from remote logins.
type UserStore interface {
	Upsert(ctx context.Context, u repository.UpsertUser) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// ProfileStore manages end-user profiles.
type ProfileStore interface {
	ListActive(ctx context.Context, userID uint64) ([]model.Profile, error)
	CreatePrincipal(ctx context.Context, userID uint64, name string) (model.Profile, error)
}

// TokenStore is the refresh-token lifecycle: issue, look up, revoke.
type TokenStore interface {
	Store(ctx context.Context, userType string, userID uint64, token string, expiresAt time.Time) error
	Lookup(ctx context.Context, token string) (model.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// AvatarStore reads the global avatar catalog.
type AvatarStore interface {
	ListAll(ctx context.Context) ([]model.Avatar, error)
}

// HighlightStore manages reseller highlights.
type HighlightStore interface {
	ListByProvider(ctx context.Context, providerID uint64, typ string) ([]model.Highlight, error)
	Get(ctx context.Context, providerID, id uint64) (model.Highlight, error)
	Create(ctx context.Context, h model.Highlight) (uint64, error)
	Update(ctx context.Context, h model.Highlight) error
	Delete(ctx context.Context, providerID, id uint64) error
}

// RemoteAuthenticator authenticates end-user credentials against a
// reseller's candidate base URLs, returning the winning response and URL.
type RemoteAuthenticator interface {
	Authenticate(ctx context.Context, baseURLs []string, username, password string) (*xtream.AuthResponse, string, error)
}

// EventPublisher ships a login event to the broker.  A nil publisher
// disables events; a failing one is logged and ignored.
type EventPublisher func(ctx context.Context, ev queue.LoginEvent) error
