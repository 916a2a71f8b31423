package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	httputils "chatgate/chatgate/utils/http"
)

// Check probes one backing service; nil means healthy.
type Check func(ctx context.Context) error

type HealthController struct {
	checks map[string]Check
}

func NewHealthController() *HealthController {
	return &HealthController{checks: map[string]Check{}}
}

// Register adds a named probe (database, redis, ...).
func (h *HealthController) Register(name string, check Check) {
	h.checks[name] = check
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if len(h.checks) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	code := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	httputils.RespondJSON(w, code, map[string]any{"status": status, "checks": results})
}
