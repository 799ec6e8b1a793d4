package tasks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

// HandleDownloadSubmission handles GET /tasks/{id}/submission/file.
// Local storage serves the file directly; other backends get a signed
// URL redirect.
func (h *Handler) HandleDownloadSubmission(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, oid)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}
	if !task.HasSubmission() {
		httpjson.Error(w, http.StatusNotFound, "task has no submission file")
		return
	}

	contentDisposition := fmt.Sprintf("attachment; filename=%q", task.Submission.FileName)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	// Check if local storage - serve file directly
	if localStorage, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(task.Submission.FileID)
		if err != nil {
			h.Log.Error("error getting file path",
				zap.Error(err),
				zap.String("file_id", task.Submission.FileID))
			httpjson.Error(w, http.StatusInternalServerError, "failed to locate file")
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	// For S3/other storage, generate signed URL and redirect
	signedURL, err := h.Storage.PresignedURL(ctx, task.Submission.FileID, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: contentDisposition,
	})
	if err != nil {
		h.Log.Error("error generating signed URL",
			zap.Error(err),
			zap.String("file_id", task.Submission.FileID))
		httpjson.Error(w, http.StatusInternalServerError, "failed to generate download link")
		return
	}

	http.Redirect(w, r, signedURL, http.StatusFound)
}
