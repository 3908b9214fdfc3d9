package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/panel-api/internal/auth"
	"github.com/streamvault/panel-api/internal/cache"
	"github.com/streamvault/panel-api/internal/config"
	"github.com/streamvault/panel-api/internal/middleware"
	"github.com/streamvault/panel-api/internal/model"
)

// HighlightHandler manages the reseller's featured categories through the
// provider panel.  List reads go through the process cache; every mutation
// invalidates both the all-types key and the affected type's key.
type HighlightHandler struct {
	Highlights HighlightStore
	Cache      *cache.Cache
	CacheCfg   config.CacheConfig
}

func NewHighlightHandler(h HighlightStore, c *cache.Cache, cfg config.CacheConfig) *HighlightHandler {
	return &HighlightHandler{Highlights: h, Cache: c, CacheCfg: cfg}
}

type highlightReq struct {
	ID           uint64 `json:"id"`
	Type         string `json:"type"`
	CategoryName string `json:"categoryName"`
	CategoryID   string `json:"categoryId"`
	LogoURL      string `json:"logoUrl"`
	Order        int    `json:"order"`
	Active       *bool  `json:"active"`
}

// List returns the authenticated reseller's highlights, optionally
// filtered by ?type=live|movie|series.
func (h *HighlightHandler) List(c echo.Context) error {
	p := c.Get(middleware.CtxProvider).(*auth.ProviderPayload)
	typ := strings.TrimSpace(c.QueryParam("type"))

	key := highlightKey(p.ProviderID, typ)
	if cached, ok := h.Cache.Get(key); ok {
		return c.JSON(http.StatusOK, cached)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	highlights, err := h.Highlights.ListByProvider(ctx, p.ProviderID, typ)
	if err != nil {
		return internalError(c, "highlights", err)
	}

	result := make([]echo.Map, 0, len(highlights))
	for _, hl := range highlights {
		result = append(result, echo.Map{
			"id":           hl.ID,
			"type":         hl.Type,
			"categoryName": hl.CategoryName,
			"categoryId":   hl.CategoryID,
			"logoUrl":      hl.LogoURL,
			"order":        hl.Order,
			"active":       hl.Active,
		})
	}
	h.Cache.Set(key, result, h.CacheCfg.HighlightTTL)
	return c.JSON(http.StatusOK, result)
}

// Create inserts a highlight for the authenticated reseller.
func (h *HighlightHandler) Create(c echo.Context) error {
	p := c.Get(middleware.CtxProvider).(*auth.ProviderPayload)

	var req highlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Corpo inválido"})
	}
	if req.Type == "" || req.CategoryName == "" || req.CategoryID == "" || req.LogoURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type, categoryName, categoryId e logoUrl obrigatórios"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Highlights.Create(ctx, model.Highlight{
		ProviderID:   p.ProviderID,
		Type:         req.Type,
		CategoryName: req.CategoryName,
		CategoryID:   req.CategoryID,
		LogoURL:      req.LogoURL,
		Order:        req.Order,
	})
	if err != nil {
		return internalError(c, "highlights", err)
	}

	h.invalidate(p.ProviderID, req.Type)
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "success": true})
}

// Update rewrites an existing highlight owned by the reseller.
func (h *HighlightHandler) Update(c echo.Context) error {
	p := c.Get(middleware.CtxProvider).(*auth.ProviderPayload)

	var req highlightReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID obrigatório"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Highlights.Get(ctx, p.ProviderID, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Destaque não encontrado"})
		}
		return internalError(c, "highlights", err)
	}

	updated := existing
	if req.Type != "" {
		updated.Type = req.Type
	}
	if req.CategoryName != "" {
		updated.CategoryName = req.CategoryName
	}
	if req.CategoryID != "" {
		updated.CategoryID = req.CategoryID
	}
	if req.LogoURL != "" {
		updated.LogoURL = req.LogoURL
	}
	if req.Order != 0 {
		updated.Order = req.Order
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	if err := h.Highlights.Update(ctx, updated); err != nil {
		return internalError(c, "highlights", err)
	}

	h.invalidate(p.ProviderID, existing.Type)
	if updated.Type != existing.Type {
		h.invalidate(p.ProviderID, updated.Type)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete removes a highlight owned by the reseller.
func (h *HighlightHandler) Delete(c echo.Context) error {
	p := c.Get(middleware.CtxProvider).(*auth.ProviderPayload)

	var req highlightReq
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID obrigatório"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Highlights.Get(ctx, p.ProviderID, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Destaque não encontrado"})
		}
		return internalError(c, "highlights", err)
	}
	if err := h.Highlights.Delete(ctx, p.ProviderID, req.ID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Destaque não encontrado"})
		}
		return internalError(c, "highlights", err)
	}

	h.invalidate(p.ProviderID, existing.Type)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// invalidate drops the cached lists affected by a mutation.
func (h *HighlightHandler) invalidate(providerID uint64, typ string) {
	h.Cache.Delete(highlightKey(providerID, ""))
	if typ != "" {
		h.Cache.Delete(highlightKey(providerID, typ))
	}
}

func highlightKey(providerID uint64, typ string) string {
	if typ == "" {
		typ = "all"
	}
	return fmt.Sprintf("highlights:%d:%s", providerID, typ)
}
