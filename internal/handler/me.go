package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/panel-api/internal/auth"
	"github.com/streamvault/panel-api/internal/middleware"
)

// MeHandler exposes the verified-identity endpoints each role uses to
// re-hydrate its session on page load.
type MeHandler struct {
	Admins    AdminStore
	Providers ProviderStore
	Users     UserStore
}

func NewMeHandler(a AdminStore, p ProviderStore, u UserStore) *MeHandler {
	return &MeHandler{Admins: a, Providers: p, Users: u}
}

// AdminMe returns the authenticated admin's profile summary.
func (h *MeHandler) AdminMe(c echo.Context) error {
	p := c.Get(middleware.CtxAdmin).(*auth.AdminPayload)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByID(ctx, p.AdminID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autorizado"})
		}
		return internalError(c, "admin me", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         admin.ID,
		"name":       admin.Name,
		"email":      admin.Email,
		"lastAccess": admin.LastAccess,
		"role":       auth.RoleAdmin,
	})
}

// ProviderProfile returns the authenticated reseller's panel profile,
// including its backend URLs (the reseller owns them; end users never see
// this endpoint).
func (h *MeHandler) ProviderProfile(c echo.Context) error {
	p := c.Get(middleware.CtxProvider).(*auth.ProviderPayload)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	provider, err := h.Providers.GetByID(ctx, p.ProviderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autorizado"})
		}
		return internalError(c, "provider profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         provider.ID,
		"code":       provider.Code,
		"name":       provider.Name,
		"email":      provider.Email,
		"logo":       provider.Logo,
		"banner":     provider.Banner,
		"urlPrimary": provider.URLPrimary,
		"urlBackup1": provider.URLBackup1,
		"urlBackup2": provider.URLBackup2,
		"role":       auth.RoleProvider,
	})
}

// UserMe returns the authenticated end user's local record summary.
func (h *MeHandler) UserMe(c echo.Context) error {
	p := c.Get(middleware.CtxUser).(*auth.UserPayload)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autorizado"})
		}
		return internalError(c, "user me", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":             user.ID,
		"name":           user.Name,
		"providerLogin":  user.ProviderLogin,
		"providerCode":   user.ProviderCode,
		"language":       user.Language,
		"parentalActive": user.ParentalActive,
		"lastLogin":      user.LastLogin,
		"role":           auth.RoleUser,
	})
}
