// Package admins exposes the admin JSON API: sign-in, admin account CRUD,
// and the mentor-side task shortcuts (assign, force status).
package admins

import (
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	adminstore "github.com/mentorstack/mentorhub/internal/app/store/admins"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
)

// Handler holds the dependencies for the admin endpoints. It is
// constructed once at startup in bootstrap.
type Handler struct {
	Admins    *adminstore.Store
	Tasks     *taskstore.Store
	Lifecycle *lifecycle.Service
	Log       *zap.Logger
}

func NewHandler(admins *adminstore.Store, tasks *taskstore.Store, lc *lifecycle.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Admins:    admins,
		Tasks:     tasks,
		Lifecycle: lc,
		Log:       logger,
	}
}
