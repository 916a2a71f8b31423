package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/types"
	"chatgate/chatgate/utils/logging"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneTokenVerifier struct{}

func (oneTokenVerifier) Verify(_ context.Context, token string) (types.User, error) {
	if token != "tok-1" {
		return types.User{}, auth.ErrInvalidToken
	}
	return types.User{Subject: "auth0|42"}, nil
}

func TestBearerAuth(t *testing.T) {
	var seen types.User
	h := BearerAuth(oneTokenVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"tok-1", http.StatusUnauthorized},
		{"Basic tok-1", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer tok-1", http.StatusNoContent},
		{"bearer tok-1", http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, tc.want, rr.Code, tc.header)
	}
	assert.Equal(t, "auth0|42", seen.Subject)
}

func TestLoadSession(t *testing.T) {
	signer := auth.NewCookieSigner("0123456789abcdef", time.Hour, false)
	store := session.NewStore(time.Hour)
	store.Save(&types.Session{ID: "live", IsAuthenticated: true})

	var got *session.Entry
	h := LoadSession(signer, store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	withCookie := func(id string) *http.Request {
		rr := httptest.NewRecorder()
		require.NoError(t, signer.Issue(rr, id))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(rr.Result().Cookies()[0])
		return req
	}

	h.ServeHTTP(httptest.NewRecorder(), withCookie("live"))
	require.NotNil(t, got)
	assert.Equal(t, "live", got.Session.ID)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, withCookie("gone"))
	assert.Nil(t, got)
	require.NotEmpty(t, rr.Result().Cookies())
	assert.Equal(t, -1, rr.Result().Cookies()[0].MaxAge)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
}

func TestRequestID(t *testing.T) {
	var id string
	h := middleware.RequestID(RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ = r.Context().Value(logging.RequestIDKey).(string)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, id)
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
