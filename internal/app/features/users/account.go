package users

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorstack/mentorhub/internal/app/system/auth"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

type signupRequest struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Domain   string `json:"domain"`
	Mentor   string `json:"mentor"`
	Password string `json:"password"`
}

// HandleSignup handles POST /users: mentee self-registration.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.createUser(ctx, req)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("user created", zap.String("user_id", user.BusinessID))
	httpjson.Respond(w, http.StatusCreated, user)
}

// HandleBulkCreate handles POST /users/bulk: admin-driven batch creation.
// Each entry succeeds or fails independently; the response reports both
// lists so a single bad row does not reject the batch.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var reqs []signupRequest
	if err := httpjson.Decode(r, &reqs); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(reqs) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "empty batch")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	type failure struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	var created []models.User
	var failed []failure

	for _, req := range reqs {
		user, err := h.createUser(ctx, req)
		if err != nil {
			h.Log.Warn("bulk create: entry failed",
				zap.String("user_id", req.ID), zap.Error(err))
			failed = append(failed, failure{ID: req.ID, Error: err.Error()})
			continue
		}
		created = append(created, user)
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"created": created,
		"failed":  failed,
	})
}

func (h *Handler) createUser(ctx context.Context, req signupRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	return h.Users.Create(ctx, models.User{
		BusinessID:   sanitize.Text(req.ID),
		FullName:     sanitize.Text(req.FullName),
		Domain:       sanitize.Text(req.Domain),
		Mentor:       sanitize.Text(req.Mentor),
		PasswordHash: string(hash),
	})
}

type loginRequest struct {
	FullName string `json:"fullname"`
	Password string `json:"password"`
}

// HandleLogin handles POST /users/login. On success the session cookie is
// set and the user record returned.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByFullName(ctx, req.FullName)
	if err != nil {
		// Same answer for unknown user and bad password.
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:   user.BusinessID,
		Name: user.FullName,
		Role: auth.RoleMentee,
	}); err != nil {
		h.Log.Error("login: session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, user)
}
