package lifecycle

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// DeleteTask removes a task and cleans up what hangs off it: the owner's
// reference arrays and any stored submission file. The record delete is
// the one operation that can fail the call; the cleanup steps are logged
// best effort so a half-gone task never blocks the admin.
func (s *Service) DeleteTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	n, err := s.Tasks.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}

	s.cleanupTaskRemains(ctx, task)
	return nil
}

// DeleteUser removes a mentee and cascades over everything they own:
// each of their tasks (with submission blobs) goes first, then the user
// document. Per-task failures are logged and the cascade continues, so
// one bad document cannot strand the rest.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.Users.GetByBusinessID(ctx, userID); err != nil {
		return err
	}

	tasks, err := s.Tasks.ListByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if _, err := s.Tasks.Delete(ctx, t.ID); err != nil {
			s.Log.Warn("failed to delete task during user cascade",
				zap.String("user_id", userID),
				zap.String("task_id", t.ID.Hex()),
				zap.Error(err))
			continue
		}
		if t.HasSubmission() && t.Submission.FileID != "" {
			if err := s.Blobs.Delete(ctx, t.Submission.FileID); err != nil {
				s.Log.Warn("failed to delete submission file during user cascade",
					zap.String("user_id", userID),
					zap.String("file_id", t.Submission.FileID),
					zap.Error(err))
			}
		}
	}

	return s.Users.Delete(ctx, userID)
}

// DeleteAllTasks removes every task through the same cascade as
// DeleteTask, so bulk deletion cleans up user references and blobs the
// same way single deletion does. Per-task failures are logged and
// counted; the sweep keeps going.
func (s *Service) DeleteAllTasks(ctx context.Context) (deleted int, failed int, err error) {
	tasks, err := s.Tasks.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, t := range tasks {
		n, err := s.Tasks.Delete(ctx, t.ID)
		if err != nil || n == 0 {
			s.Log.Warn("failed to delete task during bulk delete",
				zap.String("task_id", t.ID.Hex()), zap.Error(err))
			failed++
			continue
		}
		task := t
		s.cleanupTaskRemains(ctx, &task)
		deleted++
	}
	return deleted, failed, nil
}

func (s *Service) cleanupTaskRemains(ctx context.Context, task *models.Task) {
	if _, err := s.Users.PullTaskRefs(ctx, task.OwnerID, task.ID); err != nil {
		s.Log.Warn("failed to pull task references",
			zap.String("task_id", task.ID.Hex()),
			zap.String("user_id", task.OwnerID),
			zap.Error(err))
	}
	if task.HasSubmission() && task.Submission.FileID != "" {
		if err := s.Blobs.Delete(ctx, task.Submission.FileID); err != nil {
			s.Log.Warn("failed to delete submission file",
				zap.String("task_id", task.ID.Hex()),
				zap.String("file_id", task.Submission.FileID),
				zap.Error(err))
		}
	}
}
