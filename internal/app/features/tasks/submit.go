package tasks

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	"github.com/mentorstack/mentorhub/internal/app/system/auth"
	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
	"github.com/mentorstack/mentorhub/internal/app/system/timeouts"
)

// HandleSubmit handles POST /tasks/submit. The request is multipart form
// data with fields:
//
//	task_id  - hex task id (required)
//	file     - the submission file (required)
//	link     - a URL with supporting material, alongside the file
//	remarks  - free-form note to the reviewer
//
// A mentee may only submit against their own tasks; admins may submit on
// anyone's behalf.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	oid, err := primitive.ObjectIDFromHex(r.FormValue("task_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	in := lifecycle.SubmitInput{
		TaskID:  oid,
		Link:    r.FormValue("link"),
		Remarks: r.FormValue("remarks"),
	}

	// Ownership is enforced for mentees, bypassed for admins.
	if u, ok := auth.CurrentUser(r); ok && u.Role == auth.RoleMentee {
		in.SubmittedBy = u.ID
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		in.File = &lifecycle.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		}
	} else if err != http.ErrMissingFile {
		httpjson.Error(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sub, err := h.Lifecycle.Submit(ctx, in)
	if err != nil {
		httpjson.DomainError(w, err)
		return
	}

	h.Log.Info("submission received",
		zap.String("task_id", oid.Hex()),
		zap.String("submitted_by", sub.SubmittedBy),
		zap.Bool("has_file", sub.FileID != ""))
	httpjson.Respond(w, http.StatusOK, sub)
}
