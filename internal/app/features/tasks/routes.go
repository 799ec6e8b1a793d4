// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/go-chi/chi/v5"

	"github.com/mentorstack/mentorhub/internal/app/system/auth"
)

// Routes mounts the task endpoints under whatever base path the caller
// chooses (typically "/tasks" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Signed-in users: reads, submission, file download.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/global", h.HandleListGlobal)
		pr.Get("/user/{userId}", h.HandleListByUser)
		pr.Get("/{id}", h.HandleGet)
		pr.Get("/{id}/submission/file", h.HandleDownloadSubmission)

		pr.Post("/submit", h.HandleSubmit)
	})

	// Admin-only: creation, edits, review, deletion.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Delete("/", h.HandleDeleteAll)

		pr.Post("/{id}/verify", h.HandleVerify)
		pr.Post("/{id}/reject", h.HandleReject)
	})

	return r
}
