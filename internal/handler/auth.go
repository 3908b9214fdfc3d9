package handler

import (
    "context"              // bounds DB work per request
    "database/sql"         // sentinel for missing rows
    "encoding/json"        // serializes the remote account snapshot
    "errors"               // sentinel comparisons
    "log"                  // server-side logging of swallowed failures
    "net/http"             // HTTP status codes
    "strconv"              // exp_date string-to-int conversion
    "strings"              // input normalization
    "time"                 // token lifetimes

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/streamvault/panel-api/internal/auth"
    "github.com/streamvault/panel-api/internal/config"
    "github.com/streamvault/panel-api/internal/model"
    "github.com/streamvault/panel-api/internal/queue"
    "github.com/streamvault/panel-api/internal/repository"
)

// AuthHandler bundles dependencies for the login/refresh/logout flows of
// all three actor kinds.
type AuthHandler struct {
    Cfg       config.Config
    Admins    AdminStore
    Providers ProviderStore
    Users     UserStore
    Profiles  ProfileStore
    Tokens    TokenStore
    Xtream    RemoteAuthenticator
    Publish   EventPublisher
}

func NewAuthHandler(cfg config.Config, a AdminStore, p ProviderStore, u UserStore,
    pr ProfileStore, t TokenStore, x RemoteAuthenticator, pub EventPublisher) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Admins: a, Providers: p, Users: u, Profiles: pr, Tokens: t, Xtream: x, Publish: pub}
}

// ----- DTOs -----

type loginReq struct {
    Type         string `json:"type"` // admin | provedor | usuario
    Email        string `json:"email"`
    Password     string `json:"password"`
    ProviderCode string `json:"providerCode"`
    Username     string `json:"username"`
}

type refreshReq struct {
    RefreshToken string `json:"refreshToken"`
}

// Login branches on the declared actor type.  Admins and resellers
// authenticate against the local store; end users are authenticated by the
// reseller's remote backend.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Corpo inválido"})
    }
    switch req.Type {
    case "":
        return c.JSON(http.StatusBadRequest, echo.Map{"error": `Campo "type" obrigatório`})
    case auth.RoleAdmin:
        return h.adminLogin(c, req)
    case auth.RoleProvider:
        return h.providerLogin(c, req)
    case auth.RoleUser:
        return h.userLogin(c, req)
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tipo inválido"})
    }
}

// adminLogin verifies credentials against the admins table.  An unknown
// email, a deactivated account and a wrong password all produce the same
// 401 body so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) adminLogin(c echo.Context, req loginReq) error {
    email := strings.ToLower(strings.TrimSpace(req.Email))
    if email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email e senha obrigatórios"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    admin, err := h.Admins.GetByEmail(ctx, email)
    if err != nil {
        if err == sql.ErrNoRows {
            return invalidCredentials(c)
        }
        return internalError(c, "admin login", err)
    }
    if !admin.Active || !auth.VerifyPassword(admin.PasswordHash, req.Password) {
        return invalidCredentials(c)
    }

    if err := h.Admins.TouchLastAccess(ctx, admin.ID); err != nil {
        return internalError(c, "admin login", err)
    }

    token, err := auth.SignAdmin(h.Cfg.JWTSecret, admin.ID, h.panelTTL())
    if err != nil {
        return internalError(c, "admin login", err)
    }
    refresh, err := h.issueRefresh(ctx, auth.RoleAdmin, admin.ID)
    if err != nil {
        return internalError(c, "admin login", err)
    }

    h.publishLogin(c, auth.RoleAdmin, admin.ID, "", "")
    return c.JSON(http.StatusOK, echo.Map{
        "token":        token,
        "refreshToken": refresh,
        "user": echo.Map{
            "id":    admin.ID,
            "name":  admin.Name,
            "email": admin.Email,
            "role":  auth.RoleAdmin,
        },
    })
}

// providerLogin verifies reseller credentials with the same
// enumeration-safe error shape as adminLogin.
func (h *AuthHandler) providerLogin(c echo.Context, req loginReq) error {
    email := strings.ToLower(strings.TrimSpace(req.Email))
    if email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email e senha obrigatórios"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    provider, err := h.Providers.GetByEmail(ctx, email)
    if err != nil {
        if err == sql.ErrNoRows {
            return invalidCredentials(c)
        }
        return internalError(c, "provider login", err)
    }
    if !provider.Active || !auth.VerifyPassword(provider.PasswordHash, req.Password) {
        return invalidCredentials(c)
    }

    token, err := auth.SignProvider(h.Cfg.JWTSecret, provider.ID, h.panelTTL())
    if err != nil {
        return internalError(c, "provider login", err)
    }
    refresh, err := h.issueRefresh(ctx, auth.RoleProvider, provider.ID)
    if err != nil {
        return internalError(c, "provider login", err)
    }

    h.publishLogin(c, auth.RoleProvider, provider.ID, provider.Code, "")
    return c.JSON(http.StatusOK, echo.Map{
        "token":        token,
        "refreshToken": refresh,
        "user": echo.Map{
            "id":     provider.ID,
            "code":   provider.Code,
            "name":   provider.Name,
            "email":  provider.Email,
            "logo":   provider.Logo,
            "banner": provider.Banner,
            "role":   auth.RoleProvider,
        },
    })
}

// userLogin authenticates an end user against the reseller's remote
// backend, trying the candidate base URLs in order, then materializes the
// local user, its principal profile and the session tokens.
func (h *AuthHandler) userLogin(c echo.Context, req loginReq) error {
    code := strings.TrimSpace(req.ProviderCode)
    username := strings.TrimSpace(req.Username)
    if code == "" || username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "providerCode, username e password obrigatórios"})
    }

    // No 5s bound here: the remote failover alone may legitimately take up
    // to three candidate timeouts.
    ctx := c.Request().Context()

    provider, err := h.Providers.GetByCode(ctx, code)
    if err != nil && err != sql.ErrNoRows {
        return internalError(c, "user login", err)
    }
    if err == sql.ErrNoRows || !provider.Active {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "Provedor não encontrado ou inativo"})
    }

    remote, usedURL, err := h.Xtream.Authenticate(ctx, provider.CandidateURLs(), username, req.Password)
    if err != nil {
        // Unreachable backends and wrong passwords are deliberately
        // indistinguishable here.
        return invalidCredentials(c)
    }
    info := remote.UserInfo
    switch info.Status {
    case "Expired":
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Conta expirada"})
    case "Banned":
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Conta banida"})
    }

    displayName := info.Username
    if displayName == "" {
        displayName = username
    }
    snapshot, err := json.Marshal(model.ProviderData{
        Password: req.Password,
        BaseURL:  usedURL,
        UserInfo: &info,
    })
    if err != nil {
        return internalError(c, "user login", err)
    }

    userID, err := h.Users.Upsert(ctx, repository.UpsertUser{
        ProviderID:    provider.ID,
        ProviderCode:  provider.Code,
        ProviderLogin: username,
        Name:          displayName,
        ProviderData:  snapshot,
    })
    if err != nil {
        return internalError(c, "user login", err)
    }
    user, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return internalError(c, "user login", err)
    }

    profiles, err := h.Profiles.ListActive(ctx, userID)
    if err != nil {
        return internalError(c, "user login", err)
    }
    if len(profiles) == 0 {
        p, err := h.Profiles.CreatePrincipal(ctx, userID, username)
        if err != nil {
            return internalError(c, "user login", err)
        }
        profiles = []model.Profile{p}
    }

    token, err := auth.SignUser(h.Cfg.JWTSecret, userID, provider.ID, username, h.userTTL())
    if err != nil {
        return internalError(c, "user login", err)
    }
    refresh, err := h.issueRefresh(ctx, auth.RoleUser, userID)
    if err != nil {
        return internalError(c, "user login", err)
    }

    categories, err := h.Providers.ListSpecialCategories(ctx, provider.ID)
    if err != nil {
        return internalError(c, "user login", err)
    }

    perfis := make([]echo.Map, 0, len(profiles))
    for _, p := range profiles {
        perfis = append(perfis, echo.Map{
            "id":           p.ID,
            "name":         p.Name,
            "avatar":       p.Avatar,
            "type":         p.Type,
            "isKid":        p.IsKid,
            "pinProtected": p.PinProtected,
        })
    }
    cats := make([]echo.Map, 0, len(categories))
    for _, cat := range categories {
        cats = append(cats, echo.Map{
            "contentType":  cat.ContentType,
            "categoryType": cat.CategoryType,
            "categoryId":   cat.CategoryID,
            "categoryName": cat.CategoryName,
        })
    }

    timezone := remote.ServerInfo.Timezone
    if timezone == "" {
        timezone = "UTC"
    }

    h.publishLogin(c, auth.RoleUser, userID, provider.Code, username)
    return c.JSON(http.StatusOK, echo.Map{
        "token":        token,
        "refreshToken": refresh,
        "usuario": echo.Map{
            "id":                   userID,
            "username":             info.Username,
            "status":               info.Status,
            "expDate":              parseExpDate(info.ExpDate),
            "isTrial":              info.IsTrial,
            "maxConnections":       info.MaxConnections,
            "allowedOutputFormats": outputFormats(info.AllowedOutputFormats),
            "language":             user.Language,
            "parentalActive":       user.ParentalActive,
        },
        "provedor": echo.Map{
            "id":     provider.ID,
            "code":   provider.Code,
            "name":   provider.Name,
            "logo":   provider.Logo,
            "banner": provider.Banner,
        },
        // XUI credentials: the player addresses the remote backend
        // directly, nothing is proxied through this service.
        "xui": echo.Map{
            "baseUrl":   usedURL,
            "username":  username,
            "password":  req.Password,
            "apiUrl":    usedURL + "/player_api.php",
            "liveUrl":   usedURL + "/live/" + username + "/" + req.Password,
            "movieUrl":  usedURL + "/movie/" + username + "/" + req.Password,
            "seriesUrl": usedURL + "/series/" + username + "/" + req.Password,
        },
        "perfis":              perfis,
        "categoriasEspeciais": cats,
        "serverInfo":          echo.Map{"timezone": timezone},
    })
}

// Refresh rotates a refresh token: the presented record is revoked and a
// brand-new one issued alongside a fresh access token.  The owning actor is
// re-resolved first so a deactivated account can never mint new tokens.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken obrigatório"})
    }
    raw := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    stored, err := h.Tokens.Lookup(ctx, raw)
    if err != nil {
        if errors.Is(err, repository.ErrTokenNotFound) ||
            errors.Is(err, repository.ErrTokenRevoked) ||
            errors.Is(err, repository.ErrTokenExpired) {
            // The reason stays in the server log; clients always see the
            // same uniform error.
            log.Printf("refresh rejected: %v", err)
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Refresh token inválido ou expirado"})
        }
        return internalError(c, "refresh", err)
    }

    // Consume the presented record before anything else; even a failed
    // actor resolution must not leave it reusable.
    if err := h.Tokens.Revoke(ctx, raw); err != nil {
        return internalError(c, "refresh", err)
    }

    var token string
    switch stored.UserType {
    case auth.RoleAdmin:
        admin, err := h.Admins.GetByID(ctx, stored.UserID)
        if err != nil && err != sql.ErrNoRows {
            return internalError(c, "refresh", err)
        }
        if err == sql.ErrNoRows || !admin.Active {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Usuário inativo"})
        }
        token, err = auth.SignAdmin(h.Cfg.JWTSecret, admin.ID, h.panelTTL())
        if err != nil {
            return internalError(c, "refresh", err)
        }
    case auth.RoleProvider:
        provider, err := h.Providers.GetByID(ctx, stored.UserID)
        if err != nil && err != sql.ErrNoRows {
            return internalError(c, "refresh", err)
        }
        if err == sql.ErrNoRows || !provider.Active {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Provedor inativo"})
        }
        token, err = auth.SignProvider(h.Cfg.JWTSecret, provider.ID, h.panelTTL())
        if err != nil {
            return internalError(c, "refresh", err)
        }
    case auth.RoleUser:
        user, err := h.Users.GetByID(ctx, stored.UserID)
        if err != nil && err != sql.ErrNoRows {
            return internalError(c, "refresh", err)
        }
        if err == sql.ErrNoRows || !user.Active {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Usuário inativo"})
        }
        token, err = auth.SignUser(h.Cfg.JWTSecret, user.ID, user.ProviderID, user.ProviderLogin, h.userTTL())
        if err != nil {
            return internalError(c, "refresh", err)
        }
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "Tipo de usuário inválido"})
    }

    refresh, err := h.issueRefresh(ctx, stored.UserType, stored.UserID)
    if err != nil {
        return internalError(c, "refresh", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"token": token, "refreshToken": refresh})
}

// Logout revokes the presented refresh token.  Revoking an unknown or
// already-revoked token is a successful no-op; access tokens already issued
// are not individually revocable and simply expire.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken obrigatório"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tokens.Revoke(ctx, strings.TrimSpace(req.RefreshToken)); err != nil {
        return internalError(c, "logout", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logout realizado"})
}

// ----- helpers -----

func (h *AuthHandler) panelTTL() time.Duration {
    return time.Duration(h.Cfg.PanelTTLDays) * 24 * time.Hour
}

func (h *AuthHandler) userTTL() time.Duration {
    return time.Duration(h.Cfg.UserTTLHours) * time.Hour
}

// issueRefresh generates and stores a fresh refresh-token record.
func (h *AuthHandler) issueRefresh(ctx context.Context, userType string, userID uint64) (string, error) {
    raw, err := auth.NewRefreshToken()
    if err != nil {
        return "", err
    }
    expiresAt := time.Now().UTC().Add(time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour)
    if err := h.Tokens.Store(ctx, userType, userID, raw, expiresAt); err != nil {
        return "", err
    }
    return raw, nil
}

// publishLogin ships the event to the broker, ignoring failures; the login
// itself must never depend on the broker being up.
func (h *AuthHandler) publishLogin(c echo.Context, role string, actorID uint64, providerCode, username string) {
    if h.Publish == nil {
        return
    }
    ev := queue.LoginEvent{
        Role:         role,
        ActorID:      actorID,
        ProviderCode: providerCode,
        Username:     username,
        IP:           c.RealIP(),
        At:           time.Now().UTC().Format(time.RFC3339),
    }
    if err := h.Publish(c.Request().Context(), ev); err != nil {
        log.Printf("login event publish failed: %v", err)
    }
}

// parseExpDate converts the remote exp_date (unix seconds as string, or
// absent) into a number or nil, matching what the player expects.
func parseExpDate(s *string) any {
    if s == nil || *s == "" {
        return nil
    }
    n, err := strconv.ParseInt(*s, 10, 64)
    if err != nil {
        return nil
    }
    return n
}

// outputFormats never returns null to the client.
func outputFormats(f []string) []string {
    if f == nil {
        return []string{}
    }
    return f
}

func invalidCredentials(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciais inválidas"})
}

func internalError(c echo.Context, op string, err error) error {
    log.Printf("[%s] %v", op, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno"})
}
