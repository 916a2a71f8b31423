package routes

import (
	"chatgate/chatgate/controllers"
	"chatgate/chatgate/services/metrics"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(ctrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ctrl.HealthCheck)
	return r
}

func MetricsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Handle("/", metrics.Handler())
	return r
}
