package tasks

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

type verifyRequest struct {
	Details string `json:"details"`
}

// HandleVerify handles POST /tasks/{id}/verify: mark a pending submission
// completed and journal the completion. Re-verifying is a no-op.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req verifyRequest
	if r.ContentLength > 0 {
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Lifecycle.Verify(ctx, oid, req.Details)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("task verified", zap.String("task_id", oid.Hex()))
	httpjson.Respond(w, http.StatusOK, task)
}

// HandleReject handles POST /tasks/{id}/reject: clear the submission and
// send the task back to not_started for resubmission.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Lifecycle.Reject(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("task rejected", zap.String("task_id", oid.Hex()))
	httpjson.Respond(w, http.StatusOK, task)
}
