package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"chatgate/chatgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdP struct {
	*httptest.Server
	userinfoCalls atomic.Int32
}

func newFakeIdP(t *testing.T) *fakeIdP {
	t.Helper()
	idp := &fakeIdP{}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		idp.userinfoCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"auth0|42","email":"ada@example.com","name":"Ada"}`))
	})
	idp.Server = httptest.NewServer(mux)
	t.Cleanup(idp.Close)
	return idp
}

func testProvider(idp *fakeIdP) *Provider {
	cfg := config.Config{
		AuthDomain:      idp.URL,
		AuthClientID:    "client-123",
		AuthAudience:    "https://api.example.com",
		AuthCallbackURL: "http://localhost:8000/auth/callback",
	}
	return NewProvider(cfg).WithHTTPClient(idp.Client())
}

func TestProvider_LoginURL(t *testing.T) {
	p := NewProvider(config.Config{
		AuthDomain:      "tenant.example.com",
		AuthClientID:    "client-123",
		AuthAudience:    "https://api.example.com",
		AuthCallbackURL: "http://localhost:8000/auth/callback",
	})

	u, err := url.Parse(p.LoginURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "tenant.example.com", u.Host)
	assert.Equal(t, "/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://api.example.com", q.Get("audience"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "http://localhost:8000/auth/callback", q.Get("redirect_uri"))
}

func TestProvider_LogoutURL(t *testing.T) {
	p := NewProvider(config.Config{AuthDomain: "tenant.example.com", AuthClientID: "client-123"})

	u, err := url.Parse(p.LogoutURL("http://localhost:8000"))
	require.NoError(t, err)
	assert.Equal(t, "/v2/logout", u.Path)
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8000", u.Query().Get("returnTo"))
}

func TestProvider_HandleRedirectCallback(t *testing.T) {
	idp := newFakeIdP(t)
	p := testProvider(idp)

	sess, err := p.HandleRedirectCallback(context.Background(), "good-code")
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "tok-1", sess.AccessToken)
	assert.Equal(t, "auth0|42", sess.User.Subject)
	assert.Equal(t, "ada@example.com", sess.User.Email)
}

func TestProvider_HandleRedirectCallback_Failures(t *testing.T) {
	idp := newFakeIdP(t)
	p := testProvider(idp)

	_, err := p.HandleRedirectCallback(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingCode)

	_, err = p.HandleRedirectCallback(context.Background(), "bad-code")
	assert.Error(t, err)
}

func TestProvider_GetUser_RejectedToken(t *testing.T) {
	idp := newFakeIdP(t)
	p := testProvider(idp)

	_, err := p.GetUser(context.Background(), "stolen")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserInfoVerifier_Caches(t *testing.T) {
	idp := newFakeIdP(t)
	v := NewUserInfoVerifier(testProvider(idp), time.Minute)

	for i := 0; i < 3; i++ {
		user, err := v.Verify(context.Background(), "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "auth0|42", user.Subject)
	}
	assert.Equal(t, int32(1), idp.userinfoCalls.Load())

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = v.Verify(context.Background(), "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCookieSigner_RoundTrip(t *testing.T) {
	s := NewCookieSigner("0123456789abcdef", time.Hour, false)

	rr := httptest.NewRecorder()
	require.NoError(t, s.Issue(rr, "sess-1"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	id, err := s.SessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestCookieSigner_RejectsForeignSignature(t *testing.T) {
	other := NewCookieSigner("another-secret-value", time.Hour, false)
	value, err := other.Sign("sess-1")
	require.NoError(t, err)

	s := NewCookieSigner("0123456789abcdef", time.Hour, false)
	_, err = s.Parse(value)
	assert.Error(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = s.SessionID(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCookieSigner_Expired(t *testing.T) {
	s := NewCookieSigner("0123456789abcdef", -time.Minute, false)
	value, err := s.Sign("sess-1")
	require.NoError(t, err)

	_, err = s.Parse(value)
	assert.Error(t, err)
}

func TestCookieSigner_State(t *testing.T) {
	s := NewCookieSigner("0123456789abcdef", time.Hour, false)
	state, err := NewState()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.SetState(rr, state)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	assert.NoError(t, s.CheckState(httptest.NewRecorder(), req, state))
	assert.ErrorIs(t, s.CheckState(httptest.NewRecorder(), req, "forged"), ErrInvalidState)
	assert.ErrorIs(t, s.CheckState(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), state), ErrInvalidState)
}
