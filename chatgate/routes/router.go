package routes

import (
	"net/http"
	"time"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/controllers"
	"chatgate/chatgate/middlewares"
	"chatgate/chatgate/sources/session"
	"chatgate/chatgate/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps is everything NewRouter mounts. Verifier may be nil, which leaves the
// chat function open.
type Deps struct {
	Chat     *controllers.ChatController
	Auth     *controllers.AuthController
	Widget   *controllers.WidgetController
	Health   *controllers.HealthController
	View     *web.View
	Signer   *auth.CookieSigner
	Sessions *session.Store
	Verifier auth.TokenVerifier
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	var authMw func(http.Handler) http.Handler
	if d.Verifier != nil {
		authMw = middlewares.BearerAuth(d.Verifier)
	}

	r.Mount("/.netlify/functions", FunctionRoutes(d.Chat, authMw))
	r.Mount("/auth", AuthRoutes(d.Auth, d.Signer, d.Sessions))
	r.Mount("/health", HealthRoutes(d.Health))
	r.Mount("/metrics", MetricsRoutes())
	r.Mount("/", WidgetRoutes(d.Widget, d.View, d.Signer, d.Sessions))
	return r
}
