// Package lifecycle orchestrates the task flow between mentees, mentors,
// and stores: assignment, submission, verification, rejection, and the
// cascading deletes. Handlers stay thin; every multi-store sequence lives
// here so its ordering and compensation rules are in one place.
package lifecycle

import (
	"context"
	"io"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// TaskStore is the slice of the task store the service needs.
type TaskStore interface {
	Create(ctx context.Context, t models.Task) (models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error
	SetSubmission(ctx context.Context, id primitive.ObjectID, sub models.Submission) error
	ClearSubmission(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// UserStore is the slice of the user store the service needs.
type UserStore interface {
	GetByBusinessID(ctx context.Context, id string) (*models.User, error)
	PushAssigned(ctx context.Context, userID string, taskID primitive.ObjectID) error
	MoveAssignedToDone(ctx context.Context, userID string, taskID primitive.ObjectID) error
	PullTaskRefs(ctx context.Context, userID string, taskID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id string) error
}

// CompletedStore records verified completions.
type CompletedStore interface {
	Create(ctx context.Context, e models.CompletedTask) (models.CompletedTask, error)
}

// BlobStore is the subset of storage.Store the service touches. Declared
// locally so tests can swap in an in-memory implementation.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	Delete(ctx context.Context, path string) error
}

// Service wires the stores together. Construct once in bootstrap.
type Service struct {
	Tasks     TaskStore
	Users     UserStore
	Completed CompletedStore
	Blobs     BlobStore
	Log       *zap.Logger
}

func New(tasks TaskStore, users UserStore, completed CompletedStore, blobs BlobStore, logger *zap.Logger) *Service {
	return &Service{
		Tasks:     tasks,
		Users:     users,
		Completed: completed,
		Blobs:     blobs,
		Log:       logger,
	}
}
