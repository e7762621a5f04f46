package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthzIsPublic(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[types.Response](t, resp)
	assert.True(t, body.Success)
}

func TestMetricsIsPublic(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	f := newFixture(t)

	resp := postJSON(t, f, "/admin/login", types.LoginRequest{Password: testAdminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == f.config.CookieName {
			session = cookie
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.Equal(t, "/admin", session.Path)

	// The issued cookie authorizes admin endpoints.
	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/admin/permit-documents", nil)
	require.NoError(t, err)
	req.AddCookie(session)

	authed, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)

	resp := postJSON(t, f, "/admin/login", types.LoginRequest{Password: "guess"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "Invalid password", body["error"])
	assert.Empty(t, resp.Cookies())
}

func TestLoginNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.config.AdminPasswordHash = ""

	resp := postJSON(t, f, "/admin/login", types.LoginRequest{Password: testAdminPassword})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExpiredSessionRejected(t *testing.T) {
	f := newFixture(t)

	encoded, err := f.svc.cookie.Encode(f.config.CookieName, adminSession{
		Admin:     true,
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/admin/permit-documents", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: f.config.CookieName, Value: encoded})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGarbageSessionCookieRejected(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/admin/permit-documents", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: f.config.CookieName, Value: "not-a-session"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
