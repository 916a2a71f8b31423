// chatgate/routes/auth.go
package routes

import (
	"errors"
	"net/http"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/controllers"
	"chatgate/chatgate/middlewares"
	"chatgate/chatgate/sources/session"
	httputils "chatgate/chatgate/utils/http"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/utils/types"
	"chatgate/chatgate/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func AuthRoutes(ctrl *controllers.AuthController, signer *auth.CookieSigner, store *session.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.LoadSession(signer, store))

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		state, loginURL, err := ctrl.BeginLogin()
		if err != nil {
			logging.ErrorLogger.Error("error starting login", zap.Error(err))
			web.SetFlash(w, controllers.AuthErrorMessage)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		signer.SetState(w, state)
		http.Redirect(w, r, loginURL, http.StatusFound)
	})

	r.Get("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		fail := func(err error) {
			logging.ErrorLogger.Error("error initializing auth", zap.Error(err))
			web.SetFlash(w, controllers.AuthErrorMessage)
			http.Redirect(w, r, "/", http.StatusFound)
		}
		if err := signer.CheckState(w, r, q.Get("state")); err != nil {
			fail(err)
			return
		}
		if e := q.Get("error"); e != "" {
			fail(errors.New(e + ": " + q.Get("error_description")))
			return
		}
		entry, err := ctrl.CompleteLogin(r.Context(), q.Get("code"))
		if err != nil {
			fail(err)
			return
		}
		if prev := middlewares.SessionFromContext(r.Context()); prev != nil {
			ctrl.Forget(prev.Session.ID)
		}
		if err := signer.Issue(w, entry.Session.ID); err != nil {
			ctrl.Forget(entry.Session.ID)
			fail(err)
			return
		}
		// Redirect drops code and state from the address bar.
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/logout", func(w http.ResponseWriter, r *http.Request) {
		var id string
		if entry := middlewares.SessionFromContext(r.Context()); entry != nil {
			id = entry.Session.ID
		}
		logoutURL := ctrl.Logout(id)
		signer.Clear(w)
		http.Redirect(w, r, logoutURL, http.StatusFound)
	})

	r.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
		entry := middlewares.SessionFromContext(r.Context())
		if entry == nil || !entry.State.IsAuthenticated() {
			return types.UserInfoResponse{Authenticated: false}, http.StatusOK, nil
		}
		user := entry.State.User()
		return types.UserInfoResponse{Authenticated: true, Email: user.Email, Subject: user.Subject}, http.StatusOK, nil
	}))

	r.Get("/token", handleJSON(func(r *http.Request) (any, int, error) {
		entry := middlewares.SessionFromContext(r.Context())
		if entry == nil || !entry.Session.IsAuthenticated {
			return nil, http.StatusUnauthorized, errors.New("login required")
		}
		return types.TokenResponse{AccessToken: entry.Session.AccessToken}, http.StatusOK, nil
	}))

	return r
}

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			httputils.RespondError(w, status, err.Error())
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		httputils.RespondJSON(w, status, res)
	}
}
