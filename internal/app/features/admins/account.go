package admins

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/mentorstack/mentorhub/internal/app/store/admins"
	"github.com/mentorstack/mentorhub/internal/app/system/auth"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

type signInRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// HandleSignIn handles POST /admin/signin.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Admins.GetByBusinessID(ctx, req.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:   admin.BusinessID,
		Name: admin.FullName,
		Role: auth.RoleAdmin,
	}); err != nil {
		h.Log.Error("admin signin: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, admin)
}

type createRequest struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Domain   string `json:"domain"`
	Password string `json:"password"`
}

// HandleCreate handles POST /admin.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Admins.Create(ctx, models.Admin{
		BusinessID:   sanitize.Text(req.ID),
		FullName:     sanitize.Text(req.FullName),
		Domain:       sanitize.Text(req.Domain),
		PasswordHash: string(hash),
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("admin created", zap.String("admin_id", admin.BusinessID))
	httpjson.Respond(w, http.StatusCreated, admin)
}

// HandleList handles GET /admin.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admins, err := h.Admins.List(ctx)
	if err != nil {
		h.Log.Error("list admins failed", zap.Error(err))
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, admins)
}

// HandleGet handles GET /admin/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Admins.GetByBusinessID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, admin)
}

type updateRequest struct {
	FullName string `json:"fullname"`
	Domain   string `json:"domain"`
}

// HandleUpdate handles PUT /admin/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	err := h.Admins.UpdateProfile(ctx, id, adminstore.Update{
		FullName: sanitize.Text(req.FullName),
		Domain:   sanitize.Text(req.Domain),
	})
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	admin, err := h.Admins.GetByBusinessID(ctx, id)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, admin)
}

// HandleDelete handles DELETE /admin/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Admins.Delete(ctx, id); err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("admin deleted", zap.String("admin_id", id))
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "admin deleted"})
}
