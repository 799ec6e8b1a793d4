package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	userstore "github.com/mentorstack/mentorhub/internal/app/store/users"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

// HandleList handles GET /users. An optional ?mentor= filter narrows the
// list to one mentor's mentees.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mentor := r.URL.Query().Get("mentor")

	var err error
	users := []any{}
	if mentor != "" {
		list, e := h.Users.ListByMentor(ctx, mentor)
		err = e
		for _, u := range list {
			users = append(users, u)
		}
	} else {
		list, e := h.Users.List(ctx)
		err = e
		for _, u := range list {
			users = append(users, u)
		}
	}
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.DomainError(w, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, users)
}

// HandleGet handles GET /users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByBusinessID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, user)
}

type updateRequest struct {
	FullName string `json:"fullname"`
	Domain   string `json:"domain"`
	Mentor   string `json:"mentor"`
}

// HandleUpdate handles PUT /users/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	err := h.Users.UpdateProfile(ctx, id, userstore.Update{
		FullName: sanitize.Text(req.FullName),
		Domain:   sanitize.Text(req.Domain),
		Mentor:   sanitize.Text(req.Mentor),
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	user, err := h.Users.GetByBusinessID(ctx, id)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, user)
}

// HandleDelete handles DELETE /users/{id}. Deletion cascades over the
// mentee's tasks and stored submission files.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Lifecycle.DeleteUser(ctx, id); err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
