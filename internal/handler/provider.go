package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/panel-api/internal/cache"
	"github.com/streamvault/panel-api/internal/config"
)

// ProviderHandler exposes the public reseller search used by the player's
// first screen.  Results are served read-through from the process cache;
// a miss falls through to the database and repopulates the entry.
type ProviderHandler struct {
	Providers ProviderStore
	Cache     *cache.Cache
	CacheCfg  config.CacheConfig
}

func NewProviderHandler(p ProviderStore, c *cache.Cache, cfg config.CacheConfig) *ProviderHandler {
	return &ProviderHandler{Providers: p, Cache: c, CacheCfg: cfg}
}

type providerSearchReq struct {
	Code string `json:"code"`
}

// Search resolves a reseller by its public code and returns display
// metadata only; credentials and backend URLs never leave the server here.
func (h *ProviderHandler) Search(c echo.Context) error {
	var req providerSearchReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Código do provedor obrigatório"})
	}
	code := strings.TrimSpace(req.Code)

	cacheKey := "provider:" + code
	if cached, ok := h.Cache.Get(cacheKey); ok {
		return c.JSON(http.StatusOK, cached)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	provider, err := h.Providers.GetByCode(ctx, code)
	if err != nil && err != sql.ErrNoRows {
		return internalError(c, "provider search", err)
	}
	if err == sql.ErrNoRows || !provider.Active {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Provedor não encontrado ou inativo"})
	}

	result := echo.Map{
		"id":     provider.ID,
		"code":   provider.Code,
		"name":   provider.Name,
		"logo":   provider.Logo,
		"banner": provider.Banner,
		"active": provider.Active,
	}
	h.Cache.Set(cacheKey, result, h.CacheCfg.ProviderTTL)
	return c.JSON(http.StatusOK, result)
}
