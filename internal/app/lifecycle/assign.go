package lifecycle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/app/system/sanitize"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// AssignInput carries a new task assignment.
type AssignInput struct {
	OwnerID     string
	Title       string
	Description string
	Resources   map[string]string
	IsGlobal    bool
}

// Assign creates a task for a mentee and pushes the reference onto the
// mentee's assigned list. The owner is validated before the task is
// written, so a bad owner id never leaves an orphan document. If the
// reference push fails after the insert, the task is deleted again.
func (s *Service) Assign(ctx context.Context, in AssignInput) (models.Task, error) {
	if in.OwnerID == "" {
		return models.Task{}, fmt.Errorf("%w: user_id is required", apperrors.ErrValidation)
	}
	if _, err := s.Users.GetByBusinessID(ctx, in.OwnerID); err != nil {
		return models.Task{}, err
	}

	task, err := s.Tasks.Create(ctx, models.Task{
		OwnerID:     in.OwnerID,
		Title:       sanitize.Text(in.Title),
		Description: sanitize.Text(in.Description),
		Resources:   sanitize.ResourceMap(in.Resources),
		IsGlobal:    in.IsGlobal,
		Status:      models.StatusNotStarted,
	})
	if err != nil {
		return models.Task{}, err
	}

	if err := s.Users.PushAssigned(ctx, in.OwnerID, task.ID); err != nil {
		if _, delErr := s.Tasks.Delete(ctx, task.ID); delErr != nil {
			s.Log.Error("failed to roll back task after assign error",
				zap.String("task_id", task.ID.Hex()),
				zap.String("user_id", in.OwnerID),
				zap.Error(delErr))
		}
		return models.Task{}, err
	}

	return task, nil
}
