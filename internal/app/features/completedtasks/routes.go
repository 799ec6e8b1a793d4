// internal/app/features/completedtasks/routes.go
package completedtasks

import (
	"github.com/go-chi/chi/v5"

	"github.com/mentorstack/mentorhub/internal/app/system/auth"
)

// Routes mounts the completion journal endpoints (typically under
// "/completed-tasks" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
