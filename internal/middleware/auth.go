package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/streamvault/panel-api/internal/auth"
)

// Context keys under which the verified identity payloads are stored.
// Handlers read these via c.Get() after the matching Require* middleware
// has run.
const (
    CtxAdmin    = "admin"
    CtxProvider = "provider"
    CtxUser     = "user"
)

// ExtractToken pulls the bearer token from the Authorization header, or
// from the `token` query parameter as a fallback.  The query form exists
// because HLS players cannot attach headers to streaming sub-requests.
// Returns "" when neither is present.
func ExtractToken(c echo.Context) string {
    header := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(header, "Bearer ") {
        return strings.TrimPrefix(header, "Bearer ")
    }
    return c.QueryParam("token")
}

// RequireAdmin returns middleware that only lets verified admin tokens
// through, storing the payload under CtxAdmin.  A missing token, a bad
// token and a token signed for another role are all rejected identically.
func RequireAdmin(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := ExtractToken(c)
            if token == "" {
                return unauthorized(c)
            }
            payload, ok := auth.VerifyAdmin(secret, token)
            if !ok {
                return unauthorized(c)
            }
            c.Set(CtxAdmin, payload)
            return next(c)
        }
    }
}

// RequireProvider returns middleware admitting only reseller tokens,
// storing the payload under CtxProvider.
func RequireProvider(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := ExtractToken(c)
            if token == "" {
                return unauthorized(c)
            }
            payload, ok := auth.VerifyProvider(secret, token)
            if !ok {
                return unauthorized(c)
            }
            c.Set(CtxProvider, payload)
            return next(c)
        }
    }
}

// RequireUser returns middleware admitting only end-user tokens, storing
// the payload under CtxUser.
func RequireUser(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            token := ExtractToken(c)
            if token == "" {
                return unauthorized(c)
            }
            payload, ok := auth.VerifyUser(secret, token)
            if !ok {
                return unauthorized(c)
            }
            c.Set(CtxUser, payload)
            return next(c)
        }
    }
}

func unauthorized(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autorizado"})
}
