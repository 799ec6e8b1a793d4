package lifecycle

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// FileUpload is an uploaded submission file.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// SubmitInput carries a mentee's submission for a task.
type SubmitInput struct {
	TaskID      primitive.ObjectID
	SubmittedBy string
	File        *FileUpload
	Link        string
	Remarks     string
}

// Submit attaches a submission to a task and moves it to pending review.
// The file is required; a link and remarks may accompany it. Review and
// the retention sweep both key on the stored file, so a submission without
// one would be stuck in pending forever. Resubmitting replaces the
// previous submission; the old blob is deleted best effort after the
// record is saved.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (models.Submission, error) {
	if in.File == nil {
		return models.Submission{}, fmt.Errorf("%w: a submission file is required", apperrors.ErrValidation)
	}

	task, err := s.Tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		return models.Submission{}, err
	}
	if in.SubmittedBy != "" && in.SubmittedBy != task.OwnerID {
		return models.Submission{}, fmt.Errorf("%w: task belongs to another user", apperrors.ErrForbidden)
	}

	sub := models.Submission{
		SubmittedBy: task.OwnerID,
		SubmittedAt: time.Now().UTC(),
		Link:        sanitize.Text(in.Link),
		Remarks:     sanitize.Text(in.Remarks),
	}

	key := blobKey(in.File.Name)
	opts := &storage.PutOptions{ContentType: in.File.ContentType}
	if err := s.Blobs.Put(ctx, key, in.File.Reader, opts); err != nil {
		return models.Submission{}, fmt.Errorf("%w: store submission file: %v", apperrors.ErrStorage, err)
	}
	sub.FileID = key
	sub.FileName = sanitize.Text(in.File.Name)
	sub.FileType = in.File.ContentType

	if err := s.Tasks.SetSubmission(ctx, in.TaskID, sub); err != nil {
		// The record write failed; do not leave the fresh blob behind.
		if delErr := s.Blobs.Delete(ctx, sub.FileID); delErr != nil {
			s.Log.Warn("failed to clean up submission file after save error",
				zap.String("file_id", sub.FileID), zap.Error(delErr))
		}
		return models.Submission{}, err
	}

	// Replaced an earlier upload: drop the old blob now that the record
	// points at the new one.
	if task.HasSubmission() && task.Submission.FileID != sub.FileID {
		if err := s.Blobs.Delete(ctx, task.Submission.FileID); err != nil {
			s.Log.Warn("failed to delete replaced submission file",
				zap.String("task_id", in.TaskID.Hex()),
				zap.String("file_id", task.Submission.FileID),
				zap.Error(err))
		}
	}

	// Move the task reference from assigned to done. A failure here is
	// logged, not returned: the submission itself succeeded.
	if err := s.Users.MoveAssignedToDone(ctx, task.OwnerID, in.TaskID); err != nil {
		s.Log.Warn("failed to move task reference to done list",
			zap.String("task_id", in.TaskID.Hex()),
			zap.String("user_id", task.OwnerID),
			zap.Error(err))
	}

	return sub, nil
}

// blobKey builds a unique storage path: submissions/YYYY/MM/uuid.ext.
func blobKey(filename string) string {
	now := time.Now().UTC()
	ext := filepath.Ext(filename)
	name := uuid.NewString() + ext
	return filepath.ToSlash(filepath.Join(
		fmt.Sprintf("submissions/%04d/%02d", now.Year(), now.Month()), name))
}
