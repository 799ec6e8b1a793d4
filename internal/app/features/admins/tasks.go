package admins

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

type assignRequest struct {
	UserID      string            `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Resources   map[string]string `json:"resources"`
	IsGlobal    bool              `json:"isGlobal"`
}

// HandleAssignTask handles POST /admin/tasks: create a task and assign it
// to a mentee in one step.
func (h *Handler) HandleAssignTask(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
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

	h.Log.Info("task assigned",
		zap.String("task_id", task.ID.Hex()),
		zap.String("user_id", req.UserID))
	httpjson.Respond(w, http.StatusCreated, task)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleSetTaskStatus handles PUT /admin/tasks/{taskId}/status: force a
// task to a specific status without going through submit/verify.
func (h *Handler) HandleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		httpjson.Error(w, http.StatusBadRequest, "status must be not_started, pending, or completed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Tasks.SetStatus(ctx, oid, status); err != nil {
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
