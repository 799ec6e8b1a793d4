package tasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

type createRequest struct {
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Resources   map[string]string `json:"resources"`
	IsGlobal    bool              `json:"isGlobal"`
}

// HandleCreate handles POST /tasks. Creation always assigns: the task is
// written and its reference pushed onto the owner's assigned list.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Lifecycle.Assign(ctx, lifecycle.AssignInput{
		OwnerID:     req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Resources:   req.Resources,
		IsGlobal:    req.IsGlobal,
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, task)
}

// HandleList handles GET /tasks.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx)
	if err != nil {
		h.Log.Error("list tasks failed", zap.Error(err))
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, tasks)
}

// HandleListGlobal handles GET /tasks/global.
func (h *Handler) HandleListGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.ListGlobal(ctx)
	if err != nil {
		h.Log.Error("list global tasks failed", zap.Error(err))
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, tasks)
}

// HandleListByUser handles GET /tasks/user/{userId}.
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.ListByOwner(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, tasks)
}

// HandleGet handles GET /tasks/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, task)
}

type updateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Resources   map[string]string `json:"resources"`
	IsGlobal    *bool             `json:"isGlobal"`
}

// HandleUpdate handles PUT /tasks/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Tasks.UpdateFields(ctx, oid, taskstore.Update{
		Title:       sanitize.Text(req.Title),
		Description: sanitize.Text(req.Description),
		Resources:   sanitize.ResourceMap(req.Resources),
		IsGlobal:    req.IsGlobal,
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	task, err := h.Tasks.GetByID(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, task)
}

// HandleDelete handles DELETE /tasks/{id}: cascades over the owner's
// reference arrays and the submission blob.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Lifecycle.DeleteTask(ctx, oid); err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("task deleted", zap.String("task_id", oid.Hex()))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// HandleDeleteAll handles DELETE /tasks: removes every task with the same
// per-task cascade as single deletion.
func (h *Handler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Sweep())
	defer cancel()

	deleted, failed, err := h.Lifecycle.DeleteAllTasks(ctx)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("bulk task delete finished",
		zap.Int("deleted", deleted), zap.Int("failed", failed))
	httpjson.Respond(w, http.StatusOK, map[string]int{
		"deleted": deleted,
		"failed":  failed,
	})
}
