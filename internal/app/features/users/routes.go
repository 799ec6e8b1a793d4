// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/mentorstack/mentorhub/internal/app/system/auth"
)

// Routes mounts the mentee endpoints under whatever base path the caller
// chooses (typically "/users" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Open endpoints: account creation and login.
	r.Post("/", h.HandleSignup)
	r.Post("/login", h.HandleLogin)

	// Admin-only management.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Post("/bulk", h.HandleBulkCreate)
		pr.Get("/", h.HandleList)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/attendance", h.HandleMarkAttendance)
		pr.Delete("/{id}/attendance/{day}", h.HandleUnmarkAttendance)
	})

	// Any signed-in user can read profiles and attendance.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/{id}", h.HandleGet)
		pr.Get("/{id}/attendance", h.HandleGetAttendance)
	})

	return r
}
