package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvault/panel-api/internal/auth"
	"github.com/streamvault/panel-api/internal/middleware"
	"github.com/streamvault/panel-api/internal/model"
	"github.com/streamvault/panel-api/internal/repository"
)

func meContext(ctxKey string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(ctxKey, payload)
	return c, rec
}

func TestAdminMe(t *testing.T) {
	admins := newFakeAdmins(model.Admin{ID: 1, Name: "Root", Email: "root@panel.test", Active: true})
	h := NewMeHandler(admins, newFakeProviders(), newFakeUsers())

	c, rec := meContext(middleware.CtxAdmin, &auth.AdminPayload{AdminID: 1})
	require.NoError(t, h.AdminMe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Root", body["name"])
	assert.Equal(t, auth.RoleAdmin, body["role"])
}

// A token outliving its account row yields the generic unauthorized body.
func TestAdminMeDeletedAccount(t *testing.T) {
	h := NewMeHandler(newFakeAdmins(), newFakeProviders(), newFakeUsers())

	c, rec := meContext(middleware.CtxAdmin, &auth.AdminPayload{AdminID: 404})
	require.NoError(t, h.AdminMe(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Não autorizado", decodeBody(t, rec)["error"])
}

func TestProviderProfileIncludesBackendURLs(t *testing.T) {
	providers := newFakeProviders(model.Provider{
		ID: 2, Code: "PROV01", Name: "Provedor Um",
		URLPrimary: "http://primary.prov01.test", URLBackup1: "http://backup-1.prov01.test",
		Active: true,
	})
	h := NewMeHandler(newFakeAdmins(), providers, newFakeUsers())

	c, rec := meContext(middleware.CtxProvider, &auth.ProviderPayload{ProviderID: 2})
	require.NoError(t, h.ProviderProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "PROV01", body["code"])
	assert.Equal(t, "http://primary.prov01.test", body["urlPrimary"])
	assert.Equal(t, "http://backup-1.prov01.test", body["urlBackup1"])
}

func TestUserMe(t *testing.T) {
	users := newFakeUsers()
	id, err := users.Upsert(context.Background(), repository.UpsertUser{
		ProviderID: 2, ProviderCode: "PROV01", ProviderLogin: "joao", Name: "joao",
	})
	require.NoError(t, err)
	h := NewMeHandler(newFakeAdmins(), newFakeProviders(), users)

	c, rec := meContext(middleware.CtxUser, &auth.UserPayload{UserID: id, ProviderID: 2, ProviderLogin: "joao"})
	require.NoError(t, h.UserMe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "joao", body["providerLogin"])
	assert.Equal(t, auth.RoleUser, body["role"])
	assert.NotNil(t, body["lastLogin"])
}
