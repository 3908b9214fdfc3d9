package handler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamvault/panel-api/internal/auth"
	"github.com/streamvault/panel-api/internal/model"
	"github.com/streamvault/panel-api/internal/repository"
	"github.com/streamvault/panel-api/internal/xtream"
)

// In-memory store fakes backing the handler tests.

type fakeAdmins struct {
	admins  map[uint64]model.Admin
	touched []uint64
}

func newFakeAdmins(admins ...model.Admin) *fakeAdmins {
	f := &fakeAdmins{admins: map[uint64]model.Admin{}}
	for _, a := range admins {
		f.admins[a.ID] = a
	}
	return f
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (model.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Admin{}, sql.ErrNoRows
}

func (f *fakeAdmins) GetByID(_ context.Context, id uint64) (model.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return model.Admin{}, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAdmins) TouchLastAccess(_ context.Context, id uint64) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeProviders struct {
	providers map[uint64]model.Provider
	cats      map[uint64][]model.SpecialCategory
	codeCalls int
}

func newFakeProviders(providers ...model.Provider) *fakeProviders {
	f := &fakeProviders{providers: map[uint64]model.Provider{}, cats: map[uint64][]model.SpecialCategory{}}
	for _, p := range providers {
		f.providers[p.ID] = p
	}
	return f
}

func (f *fakeProviders) GetByCode(_ context.Context, code string) (model.Provider, error) {
	f.codeCalls++
	for _, p := range f.providers {
		if p.Code == code {
			return p, nil
		}
	}
	return model.Provider{}, sql.ErrNoRows
}

func (f *fakeProviders) GetByEmail(_ context.Context, email string) (model.Provider, error) {
	for _, p := range f.providers {
		if p.Email == email {
			return p, nil
		}
	}
	return model.Provider{}, sql.ErrNoRows
}

func (f *fakeProviders) GetByID(_ context.Context, id uint64) (model.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return model.Provider{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeProviders) ListSpecialCategories(_ context.Context, providerID uint64) ([]model.SpecialCategory, error) {
	return f.cats[providerID], nil
}

type fakeUsers struct {
	nextID  uint64
	byID    map[uint64]*model.User
	upserts int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, byID: map[uint64]*model.User{}}
}

func (f *fakeUsers) Upsert(_ context.Context, u repository.UpsertUser) (uint64, error) {
	f.upserts++
	now := time.Now().UTC()
	for _, existing := range f.byID {
		if existing.ProviderID == u.ProviderID && existing.ProviderLogin == u.ProviderLogin {
			existing.Name = u.Name
			existing.ProviderData = u.ProviderData
			existing.Active = true
			existing.LastLogin = &now
			return existing.ID, nil
		}
	}
	id := f.nextID
	f.nextID++
	f.byID[id] = &model.User{
		ID:            id,
		ProviderID:    u.ProviderID,
		ProviderCode:  u.ProviderCode,
		ProviderLogin: u.ProviderLogin,
		Name:          u.Name,
		ProviderData:  u.ProviderData,
		Active:        true,
		LastLogin:     &now,
		CreatedAt:     now,
	}
	return id, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return *u, nil
}

type fakeProfiles struct {
	nextID uint64
	byUser map[uint64][]model.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{nextID: 1, byUser: map[uint64][]model.Profile{}}
}

func (f *fakeProfiles) ListActive(_ context.Context, userID uint64) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.byUser[userID] {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) CreatePrincipal(_ context.Context, userID uint64, name string) (model.Profile, error) {
	p := model.Profile{
		ID:        f.nextID,
		UserID:    userID,
		Name:      name,
		Avatar:    "1",
		Type:      "principal",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	f.nextID++
	f.byUser[userID] = append(f.byUser[userID], p)
	return p, nil
}

type fakeTokens struct {
	nextID uint64
	rows   map[string]*model.RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{nextID: 1, rows: map[string]*model.RefreshToken{}}
}

func (f *fakeTokens) Store(_ context.Context, userType string, userID uint64, token string, expiresAt time.Time) error {
	f.rows[token] = &model.RefreshToken{
		ID:        f.nextID,
		UserType:  userType,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	f.nextID++
	return nil
}

func (f *fakeTokens) Lookup(_ context.Context, token string) (model.RefreshToken, error) {
	row, ok := f.rows[token]
	if !ok {
		return model.RefreshToken{}, repository.ErrTokenNotFound
	}
	if row.Revoked {
		return model.RefreshToken{}, repository.ErrTokenRevoked
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return model.RefreshToken{}, repository.ErrTokenExpired
	}
	return *row, nil
}

func (f *fakeTokens) Revoke(_ context.Context, token string) error {
	if row, ok := f.rows[token]; ok {
		row.Revoked = true
	}
	return nil
}

// active returns how many rows are usable right now.
func (f *fakeTokens) active() int {
	n := 0
	for _, row := range f.rows {
		if !row.Revoked && time.Now().UTC().Before(row.ExpiresAt) {
			n++
		}
	}
	return n
}

type fakeXtream struct {
	resp    *xtream.AuthResponse
	usedURL string
	err     error
	gotURLs []string
}

func (f *fakeXtream) Authenticate(_ context.Context, baseURLs []string, _, _ string) (*xtream.AuthResponse, string, error) {
	f.gotURLs = baseURLs
	if f.err != nil {
		return nil, "", f.err
	}
	return f.resp, f.usedURL, nil
}

type fakeAvatars struct {
	avatars []model.Avatar
	calls   int
}

func (f *fakeAvatars) ListAll(_ context.Context) ([]model.Avatar, error) {
	f.calls++
	return f.avatars, nil
}

type fakeHighlights struct {
	nextID uint64
	rows   map[uint64]model.Highlight
	lists  int
}

func newFakeHighlights() *fakeHighlights {
	return &fakeHighlights{nextID: 1, rows: map[uint64]model.Highlight{}}
}

func (f *fakeHighlights) ListByProvider(_ context.Context, providerID uint64, typ string) ([]model.Highlight, error) {
	f.lists++
	var out []model.Highlight
	for _, h := range f.rows {
		if h.ProviderID == providerID && (typ == "" || h.Type == typ) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHighlights) Get(_ context.Context, providerID, id uint64) (model.Highlight, error) {
	h, ok := f.rows[id]
	if !ok || h.ProviderID != providerID {
		return model.Highlight{}, sql.ErrNoRows
	}
	return h, nil
}

func (f *fakeHighlights) Create(_ context.Context, h model.Highlight) (uint64, error) {
	h.ID = f.nextID
	f.nextID++
	h.Active = true
	f.rows[h.ID] = h
	return h.ID, nil
}

func (f *fakeHighlights) Update(_ context.Context, h model.Highlight) error {
	existing, ok := f.rows[h.ID]
	if !ok || existing.ProviderID != h.ProviderID {
		return nil
	}
	f.rows[h.ID] = h
	return nil
}

func (f *fakeHighlights) Delete(_ context.Context, providerID, id uint64) error {
	h, ok := f.rows[id]
	if !ok || h.ProviderID != providerID {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

// mustHash panics on bcrypt failure; only for seeding test fixtures.
// MinCost keeps the test suite fast.
func mustHash(plain string) string {
	h, err := auth.HashPassword(plain, bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("hash fixture: %v", err))
	}
	return h
}
