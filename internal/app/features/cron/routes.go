// internal/app/features/cron/routes.go
package cron

import "github.com/go-chi/chi/v5"

// Routes mounts the cron trigger (typically under "/cron" from
// bootstrap). Auth is the bearer secret, not a session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/run", h.HandleRun)
	return r
}
