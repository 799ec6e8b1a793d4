package lifecycle

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// Verify marks a pending submission as completed and records a journal
// entry. Calling it on an already-completed task is a no-op, so a retried
// request does not double-journal.
func (s *Service) Verify(ctx context.Context, taskID primitive.ObjectID, details string) (*models.Task, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == models.StatusCompleted {
		return task, nil
	}
	if !task.HasSubmission() {
		return nil, fmt.Errorf("%w: task has no submission to verify", apperrors.ErrValidation)
	}

	if err := s.Tasks.SetStatus(ctx, taskID, models.StatusCompleted); err != nil {
		return nil, err
	}
	task.Status = models.StatusCompleted

	entry := models.CompletedTask{
		TaskRef:   taskID.Hex(),
		UserID:    task.OwnerID,
		Details:   sanitize.Text(details),
		Source:    "verify",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.Completed.Create(ctx, entry); err != nil {
		// The status change stands; the journal is secondary.
		s.Log.Warn("failed to journal completed task",
			zap.String("task_id", taskID.Hex()),
			zap.String("user_id", task.OwnerID),
			zap.Error(err))
	}

	return task, nil
}

// Reject clears a task's submission and sends it back to not_started so
// the mentee can resubmit. The stored file, if any, is deleted best
// effort after the record is updated.
func (s *Service) Reject(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.HasSubmission() {
		return nil, fmt.Errorf("%w: task has no submission to reject", apperrors.ErrValidation)
	}

	if err := s.Tasks.ClearSubmission(ctx, taskID, models.StatusNotStarted); err != nil {
		return nil, err
	}

	if task.Submission.FileID != "" {
		if err := s.Blobs.Delete(ctx, task.Submission.FileID); err != nil {
			s.Log.Warn("failed to delete rejected submission file",
				zap.String("task_id", taskID.Hex()),
				zap.String("file_id", task.Submission.FileID),
				zap.Error(err))
		}
	}

	task.Submission = nil
	task.Status = models.StatusNotStarted
	return task, nil
}
