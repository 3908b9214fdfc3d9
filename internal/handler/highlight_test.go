package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvault/panel-api/internal/auth"
	"github.com/streamvault/panel-api/internal/cache"
	"github.com/streamvault/panel-api/internal/config"
	"github.com/streamvault/panel-api/internal/middleware"
	"github.com/streamvault/panel-api/internal/model"
)

const highlightProviderID = 2

// providerContext builds an echo context already carrying the provider
// payload the auth middleware would have stored.
func providerContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(middleware.CtxProvider, &auth.ProviderPayload{ProviderID: highlightProviderID})
	return c, rec
}

func newHighlightEnv() (*HighlightHandler, *fakeHighlights) {
	store := newFakeHighlights()
	return NewHighlightHandler(store, cache.New(100), config.LoadCacheConfig()), store
}

func seedHighlight(store *fakeHighlights, typ, name string) uint64 {
	id := store.nextID
	store.nextID++
	store.rows[id] = model.Highlight{
		ID:           id,
		ProviderID:   highlightProviderID,
		Type:         typ,
		CategoryName: name,
		CategoryID:   "42",
		LogoURL:      "https://cdn.test/" + name + ".png",
		Order:        1,
		Active:       true,
	}
	return id
}

func TestHighlightListCachesPerType(t *testing.T) {
	h, store := newHighlightEnv()
	seedHighlight(store, "live", "Esportes")
	seedHighlight(store, "movie", "Lançamentos")

	c, rec := providerContext(http.MethodGet, "/v1/panel/highlights", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var all []any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
	assert.Equal(t, 1, store.lists)

	// Repeat is served from the cache.
	c2, _ := providerContext(http.MethodGet, "/v1/panel/highlights", "")
	require.NoError(t, h.List(c2))
	assert.Equal(t, 1, store.lists)

	// A typed list is a different cache key and hits the store once.
	c3, rec3 := providerContext(http.MethodGet, "/v1/panel/highlights?type=live", "")
	require.NoError(t, h.List(c3))
	var live []any
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &live))
	assert.Len(t, live, 1)
	assert.Equal(t, 2, store.lists)
}

func TestHighlightCreateInvalidatesList(t *testing.T) {
	h, store := newHighlightEnv()
	seedHighlight(store, "live", "Esportes")

	c, _ := providerContext(http.MethodGet, "/v1/panel/highlights", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, 1, store.lists)

	c2, rec2 := providerContext(http.MethodPost, "/v1/panel/highlights",
		`{"type":"live","categoryName":"Filmes 4K","categoryId":"77","logoUrl":"https://cdn.test/4k.png","order":2}`)
	require.NoError(t, h.Create(c2))
	require.Equal(t, http.StatusCreated, rec2.Code)

	// The cached list was dropped, so the next read sees the new entry.
	c3, rec3 := providerContext(http.MethodGet, "/v1/panel/highlights", "")
	require.NoError(t, h.List(c3))
	var all []any
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &all))
	assert.Len(t, all, 2)
	assert.Equal(t, 2, store.lists)
}

func TestHighlightCreateMissingFields(t *testing.T) {
	h, _ := newHighlightEnv()
	c, rec := providerContext(http.MethodPost, "/v1/panel/highlights", `{"type":"live"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHighlightUpdateMergesFields(t *testing.T) {
	h, store := newHighlightEnv()
	id := seedHighlight(store, "live", "Esportes")

	c, rec := providerContext(http.MethodPut, "/v1/panel/highlights",
		`{"id":1,"order":5}`)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	row := store.rows[id]
	assert.Equal(t, 5, row.Order)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Esportes", row.CategoryName)
	assert.Equal(t, "live", row.Type)
	assert.True(t, row.Active)
}

func TestHighlightUpdateNotFound(t *testing.T) {
	h, _ := newHighlightEnv()
	c, rec := providerContext(http.MethodPut, "/v1/panel/highlights", `{"id":99,"order":5}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Destaque não encontrado", decodeBody(t, rec)["error"])
}

func TestHighlightUpdateMissingID(t *testing.T) {
	h, _ := newHighlightEnv()
	c, rec := providerContext(http.MethodPut, "/v1/panel/highlights", `{"order":5}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID obrigatório", decodeBody(t, rec)["error"])
}

func TestHighlightDelete(t *testing.T) {
	h, store := newHighlightEnv()
	id := seedHighlight(store, "live", "Esportes")

	c, rec := providerContext(http.MethodDelete, "/v1/panel/highlights", `{"id":1}`)
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)
	_, exists := store.rows[id]
	assert.False(t, exists)

	// Deleting again reports the row as gone.
	c2, rec2 := providerContext(http.MethodDelete, "/v1/panel/highlights", `{"id":1}`)
	require.NoError(t, h.Delete(c2))
	assert.Equal(t, http.StatusNotFound, rec2.Code)
}

// Another reseller's highlight is invisible, even by ID.
func TestHighlightTenantIsolation(t *testing.T) {
	h, store := newHighlightEnv()
	store.rows[1] = model.Highlight{ID: 1, ProviderID: 999, Type: "live", CategoryName: "Alheio"}
	store.nextID = 2

	c, rec := providerContext(http.MethodPut, "/v1/panel/highlights", `{"id":1,"order":5}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c2, rec2 := providerContext(http.MethodGet, "/v1/panel/highlights", "")
	require.NoError(t, h.List(c2))
	var all []any
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &all))
	assert.Empty(t, all)
}
