// Package users exposes the mentee JSON API: signup, bulk creation,
// login, profile CRUD, and attendance tracking.
package users

import (
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	userstore "github.com/mentorstack/mentorhub/internal/app/store/users"
)

// Handler holds the dependencies for the mentee endpoints. It is
// constructed once at startup in bootstrap.
type Handler struct {
	Users     *userstore.Store
	Lifecycle *lifecycle.Service
	Log       *zap.Logger
}

func NewHandler(users *userstore.Store, lc *lifecycle.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Users:     users,
		Lifecycle: lc,
		Log:       logger,
	}
}
