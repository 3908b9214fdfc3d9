package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/panel-api/internal/cache"
	"github.com/streamvault/panel-api/internal/config"
)

// AvatarHandler serves the global avatar catalog.  The catalog changes
// rarely, so it is cached for a long TTL.
type AvatarHandler struct {
	Avatars  AvatarStore
	Cache    *cache.Cache
	CacheCfg config.CacheConfig
}

func NewAvatarHandler(a AvatarStore, c *cache.Cache, cfg config.CacheConfig) *AvatarHandler {
	return &AvatarHandler{Avatars: a, Cache: c, CacheCfg: cfg}
}

// List returns every avatar grouped by category then display order.
func (h *AvatarHandler) List(c echo.Context) error {
	const cacheKey = "avatars:all"
	if cached, ok := h.Cache.Get(cacheKey); ok {
		return c.JSON(http.StatusOK, cached)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	avatars, err := h.Avatars.ListAll(ctx)
	if err != nil {
		return internalError(c, "avatars", err)
	}

	result := make([]echo.Map, 0, len(avatars))
	for _, a := range avatars {
		result = append(result, echo.Map{
			"id":       a.ID,
			"name":     a.Name,
			"file":     a.File,
			"category": a.Category,
			"order":    a.Order,
		})
	}
	h.Cache.Set(cacheKey, result, h.CacheCfg.AvatarTTL)
	return c.JSON(http.StatusOK, result)
}
