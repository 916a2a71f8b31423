package routes

import (
	"net/http"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/controllers"
	"chatgate/chatgate/middlewares"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/utils/logging"
	"chatgate/chatgate/web"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func WidgetRoutes(ctrl *controllers.WidgetController, view *web.View, signer *auth.CookieSigner, store *session.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.LoadSession(signer, store))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		page := ctrl.Page(middlewares.SessionFromContext(r.Context()), web.Flash(r))
		if err := view.Render(w, page); err != nil {
			logging.ErrorLogger.Error("error rendering page", zap.Error(err))
		}
	})

	r.Post("/chat/messages", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if err := ctrl.Send(r.Context(), middlewares.SessionFromContext(r.Context()), r.PostFormValue("message")); err != nil {
			logging.AppLogger.Info("widget send rejected", zap.Error(err))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	return r
}
