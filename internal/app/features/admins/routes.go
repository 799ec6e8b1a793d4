// internal/app/features/admins/routes.go
package admins

import (
	"github.com/go-chi/chi/v5"

	"github.com/mentorstack/mentorhub/internal/app/system/auth"
)

// Routes mounts the admin endpoints under whatever base path the caller
// chooses (typically "/admin" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signin", h.HandleSignIn)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		// Admin accounts.
		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		// Mentor-side task shortcuts.
		pr.Post("/tasks", h.HandleAssignTask)
		pr.Put("/tasks/{taskId}/status", h.HandleSetTaskStatus)
	})

	return r
}
