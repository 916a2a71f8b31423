package middlewares

import (
	"context"
	"net/http"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/utils/logging"

	"github.com/go-chi/chi/v5/middleware"
)

const SessionKey contextKey = "session"

// LoadSession attaches the caller's session entry, if the cookie names a live
// one. Requests without a session pass through untouched.
func LoadSession(signer *auth.CookieSigner, store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := signer.SessionID(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			entry, err := store.Get(id)
			if err != nil {
				signer.Clear(w)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), SessionKey, entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFromContext(ctx context.Context) *session.Entry {
	entry, _ := ctx.Value(SessionKey).(*session.Entry)
	return entry
}

// RequestID copies chi's request id to where logging.LogDuration looks for it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), logging.RequestIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}
