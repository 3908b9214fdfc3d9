package xtream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authOKServer(t *testing.T, status string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player_api.php", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("username"))
		assert.NotEmpty(t, r.URL.Query().Get("password"))
		_ = json.NewEncoder(w).Encode(AuthResponse{
			UserInfo:   UserInfo{Username: r.URL.Query().Get("username"), Auth: 1, Status: status},
			ServerInfo: ServerInfo{Timezone: "America/Sao_Paulo"},
		})
	}))
}

func authDeniedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(AuthResponse{UserInfo: UserInfo{Auth: 0}})
	}))
}

func brokenServer(t *testing.T, code int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))
}

func TestAuthenticateFirstCandidateWins(t *testing.T) {
	srv := authOKServer(t, StatusActive)
	defer srv.Close()

	c := NewClient(time.Second)
	resp, used, err := c.Authenticate(context.Background(), []string{srv.URL}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, srv.URL, used)
	assert.True(t, resp.Authenticated())
	assert.Equal(t, "joao", resp.UserInfo.Username)
	assert.Equal(t, "America/Sao_Paulo", resp.ServerInfo.Timezone)
}

// Only the third candidate answers positively: the first refuses the
// credentials, the second errors out.  The bridge must keep walking the
// list and report the third URL as the winner.
func TestAuthenticateFailsOverToThirdCandidate(t *testing.T) {
	denied := authDeniedServer(t)
	defer denied.Close()
	broken := brokenServer(t, http.StatusBadGateway)
	defer broken.Close()
	ok := authOKServer(t, StatusActive)
	defer ok.Close()

	c := NewClient(time.Second)
	resp, used, err := c.Authenticate(context.Background(),
		[]string{denied.URL, broken.URL, ok.URL}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, ok.URL, used)
	assert.True(t, resp.Authenticated())
}

func TestAuthenticateAllCandidatesFail(t *testing.T) {
	denied := authDeniedServer(t)
	defer denied.Close()
	broken := brokenServer(t, http.StatusInternalServerError)
	defer broken.Close()

	c := NewClient(time.Second)
	_, _, err := c.Authenticate(context.Background(),
		[]string{denied.URL, broken.URL, "http://127.0.0.1:1"}, "joao", "x")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestAuthenticateTimeoutMovesToNextCandidate(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(AuthResponse{UserInfo: UserInfo{Auth: 1}})
	}))
	defer slow.Close()
	ok := authOKServer(t, StatusActive)
	defer ok.Close()

	c := NewClient(50 * time.Millisecond)
	_, used, err := c.Authenticate(context.Background(), []string{slow.URL, ok.URL}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, ok.URL, used)
}

func TestAuthenticateTrimsTrailingSlash(t *testing.T) {
	ok := authOKServer(t, StatusActive)
	defer ok.Close()

	c := NewClient(time.Second)
	_, used, err := c.Authenticate(context.Background(), []string{ok.URL + "/"}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, ok.URL, used)
}

func TestAuthenticateSkipsEmptyCandidates(t *testing.T) {
	ok := authOKServer(t, StatusActive)
	defer ok.Close()

	c := NewClient(time.Second)
	_, used, err := c.Authenticate(context.Background(), []string{"", ok.URL}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, ok.URL, used)
}

func TestAuthenticateNoCandidates(t *testing.T) {
	c := NewClient(time.Second)
	_, _, err := c.Authenticate(context.Background(), nil, "joao", "x")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

// The remote status is passed through untouched; interpreting Expired or
// Banned is the caller's concern.
func TestAuthenticatePassesStatusThrough(t *testing.T) {
	banned := authOKServer(t, StatusBanned)
	defer banned.Close()

	c := NewClient(time.Second)
	resp, _, err := c.Authenticate(context.Background(), []string{banned.URL}, "joao", "x")
	require.NoError(t, err)
	assert.Equal(t, StatusBanned, resp.UserInfo.Status)
}
