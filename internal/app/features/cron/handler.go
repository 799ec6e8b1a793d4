// Package cron exposes the external maintenance trigger: an endpoint
// gated by a shared-secret bearer token that runs the same maintenance
// routine as the in-process worker and returns the run report.
package cron

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/maintenance"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

// Handler holds the shared runner and the configured secret.
type Handler struct {
	Runner *maintenance.Runner
	Secret string
	Log    *zap.Logger
}

func NewHandler(runner *maintenance.Runner, secret string, logger *zap.Logger) *Handler {
	return &Handler{Runner: runner, Secret: secret, Log: logger}
}

// HandleRun handles POST /cron/run. The caller must send
// "Authorization: Bearer <secret>". An unset secret disables the
// endpoint entirely.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if h.Secret == "" {
		httpjson.Error(w, http.StatusNotFound, "not found")
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == r.Header.Get("Authorization") || token == "" {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.Secret)) != 1 {
		h.Log.Warn("cron run rejected: bad token", zap.String("remote", r.RemoteAddr))
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Sweep())
	defer cancel()

	report := h.Runner.Run(ctx, "cron")
	httpjson.Respond(w, http.StatusOK, report)
}
