package users

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

const dayFormat = "2006-01-02"

type attendanceRequest struct {
	Day string `json:"day"` // "2006-01-02"; empty means today
}

// HandleGetAttendance handles GET /users/{id}/attendance.
func (h *Handler) HandleGetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByBusinessID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	attendance := user.Attendance
	if attendance == nil {
		attendance = map[string]int{}
	}
	httpjson.Respond(w, http.StatusOK, attendance)
}

// HandleMarkAttendance handles POST /users/{id}/attendance.
func (h *Handler) HandleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	day := req.Day
	if day == "" {
		day = time.Now().UTC().Format(dayFormat)
	}
	if _, err := time.Parse(dayFormat, day); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.MarkAttendance(ctx, chi.URLParam(r, "id"), day); err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "attendance marked", "day": day})
}

// HandleUnmarkAttendance handles DELETE /users/{id}/attendance/{day}.
func (h *Handler) HandleUnmarkAttendance(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	if _, err := time.Parse(dayFormat, day); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UnmarkAttendance(ctx, chi.URLParam(r, "id"), day); err != nil {
		httpjson.DomainError(w, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"message": "attendance unmarked", "day": day})
}
