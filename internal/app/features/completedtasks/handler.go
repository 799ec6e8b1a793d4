// Package completedtasks exposes the completion journal JSON API.
package completedtasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	completedstore "github.com/mentorstack/mentorhub/internal/app/store/completed"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// Handler holds the dependencies for the completion journal endpoints.
type Handler struct {
	Completed *completedstore.Store
	Log       *zap.Logger
}

func NewHandler(completed *completedstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Completed: completed, Log: logger}
}

type createRequest struct {
	TaskRef string `json:"id"`
	UserID  string `json:"user_id"`
	Details string `json:"details"`
}

// HandleCreate handles POST /completed-tasks: record a completion entry
// directly, outside the verify flow.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entry, err := h.Completed.Create(ctx, models.CompletedTask{
		TaskRef: req.TaskRef,
		UserID:  req.UserID,
		Details: sanitize.Text(req.Details),
		Source:  "manual",
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, entry)
}

// HandleList handles GET /completed-tasks. An optional ?user_id= filter
// narrows to one mentee's entries.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	userID := r.URL.Query().Get("user_id")

	var (
		entries []models.CompletedTask
		err     error
	)
	if userID != "" {
		entries, err = h.Completed.ListByUser(ctx, userID)
	} else {
		entries, err = h.Completed.List(ctx)
	}
	if err != nil {
		h.Log.Error("list completed tasks failed", zap.Error(err))
		httpjson.DomainError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, entries)
}

// HandleGet handles GET /completed-tasks/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entry, err := h.Completed.GetByID(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, entry)
}

type updateRequest struct {
	Details string `json:"details"`
}

// HandleUpdate handles PUT /completed-tasks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Completed.UpdateDetails(ctx, oid, sanitize.Text(req.Details)); err != nil {
		httpjson.DomainError(w, err)
		return
	}

	entry, err := h.Completed.GetByID(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, entry)
}

// HandleDelete handles DELETE /completed-tasks/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Completed.Delete(ctx, oid); err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "entry deleted"})
}
