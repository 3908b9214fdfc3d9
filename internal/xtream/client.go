package xtream

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/url"
    "strings"
    "time"
)

// ErrAuthFailed is returned when no candidate URL produced a positive
// authentication.  Callers must not distinguish an unreachable backend from
// wrong credentials, so per-URL failures are swallowed into this one error.
var ErrAuthFailed = errors.New("xtream: authentication failed on all candidate urls")

// DefaultTimeout bounds each individual call to a candidate URL.
const DefaultTimeout = 10 * time.Second

// Client authenticates end-user credentials against a reseller's backend.
type Client struct {
    http *http.Client
}

// NewClient returns a Client whose per-call timeout is the given duration
// (DefaultTimeout when zero or negative).
func NewClient(timeout time.Duration) *Client {
    if timeout <= 0 {
        timeout = DefaultTimeout
    }
    return &Client{http: &http.Client{Timeout: timeout}}
}

// Authenticate tries each base URL in order and returns the first response
// whose auth flag is positive, along with the base URL that produced it
// (trailing slash trimmed).  A candidate is skipped on timeout, network
// error, non-2xx status, undecodable body or a negative auth flag; ordering
// is significant (primary first), so candidates are never raced in
// parallel.  When every candidate fails, ErrAuthFailed is returned.
func (c *Client) Authenticate(ctx context.Context, baseURLs []string, username, password string) (*AuthResponse, string, error) {
    for _, base := range baseURLs {
        if base == "" {
            continue
        }
        base = strings.TrimRight(base, "/")
        resp, err := c.tryOne(ctx, base, username, password)
        if err != nil || !resp.Authenticated() {
            continue // next candidate; per-URL failures are expected
        }
        return resp, base, nil
    }
    return nil, "", ErrAuthFailed
}

func (c *Client) tryOne(ctx context.Context, base, username, password string) (*AuthResponse, error) {
    q := url.Values{}
    q.Set("username", username)
    q.Set("password", password)
    endpoint := base + "/player_api.php?" + q.Encode()

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
    if err != nil {
        return nil, err
    }
    res, err := c.http.Do(req)
    if err != nil {
        return nil, err
    }
    defer res.Body.Close()

    if res.StatusCode < 200 || res.StatusCode > 299 {
        return nil, errors.New("xtream: unexpected status " + res.Status)
    }
    var out AuthResponse
    if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
        return nil, err
    }
    return &out, nil
}
