// Package tasks exposes the task JSON API: CRUD, submission upload,
// review (verify/reject), and submission file download.
package tasks

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
)

// maxUploadBytes caps a submission upload.
const maxUploadBytes = 32 << 20 // 32 MiB

// Handler holds the dependencies for the task endpoints. It is
// constructed once at startup in bootstrap.
type Handler struct {
	Tasks     *taskstore.Store
	Lifecycle *lifecycle.Service
	Storage   storage.Store
	Log       *zap.Logger
}

func NewHandler(tasks *taskstore.Store, lc *lifecycle.Service, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:     tasks,
		Lifecycle: lc,
		Storage:   store,
		Log:       logger,
	}
}
