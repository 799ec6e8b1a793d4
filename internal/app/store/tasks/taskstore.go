package taskstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts a new task. Status defaults to not_started.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Title = strings.TrimSpace(t.Title)

	if t.OwnerID == "" {
		return models.Task{}, fmt.Errorf("%w: user_id is required", apperrors.ErrValidation)
	}
	if t.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if t.Status == "" {
		t.Status = models.StatusNotStarted
	}
	if !t.Status.Valid() {
		return models.Task{}, fmt.Errorf("%w: bad status %q", apperrors.ErrValidation, t.Status)
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &t, nil
}

// List returns all tasks, newest first.
func (s *Store) List(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{})
}

// ListByOwner returns the tasks owned by a mentee, oldest first
// (assignment order).
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListGlobal returns tasks flagged as global.
func (s *Store) ListGlobal(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{"is_global": true})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the task fields an admin may edit directly.
type Update struct {
	Title       string
	Description string
	Resources   map[string]string
	IsGlobal    *bool
}

// UpdateFields applies an admin edit.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(upd.Title) != "" {
		set["title"] = strings.TrimSpace(upd.Title)
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Resources != nil {
		set["resources"] = upd.Resources
	}
	if upd.IsGlobal != nil {
		set["is_global"] = *upd.IsGlobal
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}

// SetStatus writes a status transition.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: bad status %q", apperrors.ErrValidation, status)
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}

// SetSubmission attaches a submission and moves the task to pending.
func (s *Store) SetSubmission(ctx context.Context, id primitive.ObjectID, sub models.Submission) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"submission": sub,
		"status":     models.StatusPending,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}

// ClearSubmission removes the submission record and sets the given status.
// Used by reject (→ not_started) and by the retention sweep (status kept
// completed).
func (s *Store) ClearSubmission(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: bad status %q", apperrors.ErrValidation, status)
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"submission": ""},
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}

// Delete removes a task document and returns the deleted count.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/*
Curriculum queries used by the maintenance scheduler.
*/

// FindCurriculumTask returns the owner's curriculum task (matched by owner
// + title, the backfill dedup key), or nil when absent.
func (s *Store) FindCurriculumTask(ctx context.Context, ownerID, title string) (*models.Task, error) {
	var t models.Task
	err := s.c.FindOne(ctx, bson.M{"user_id": ownerID, "title": title}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCompletedCurriculum returns curriculum tasks ready for advancement:
// status completed, a positive problem id, and the curriculum title.
func (s *Store) ListCompletedCurriculum(ctx context.Context, title string) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"status":         models.StatusCompleted,
		"dsa_problem_id": bson.M{"$gt": 0},
		"title":          title,
	})
	if err != nil {
		return nil, err
	}
	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithSubmissions returns tasks holding a stored submission file,
// excluding the curriculum title. These are the retention sweep candidates.
func (s *Store) ListWithSubmissions(ctx context.Context, excludeTitle string) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"submission.file_id": bson.M{"$exists": true, "$ne": ""},
		"title":              bson.M{"$ne": excludeTitle},
	})
	if err != nil {
		return nil, err
	}
	var out []models.Task
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Advance rewrites a curriculum task in place for the next catalog problem
// and resets it to not_started. The filter re-checks the completed status
// so a task the mentee just resubmitted against is left alone.
func (s *Store) Advance(ctx context.Context, id primitive.ObjectID, problemID int, description string, resources map[string]string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusCompleted},
		bson.M{"$set": bson.M{
			"dsa_problem_id": problemID,
			"description":    description,
			"resources":      resources,
			"status":         models.StatusNotStarted,
			"updated_at":     time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: task %s no longer completed", apperrors.ErrConflict, id.Hex())
	}
	return nil
}

// ResetStale moves a pending task back to not_started, keeping the stale
// submission in place so the mentee's previous upload stays inspectable
// until they resubmit. The filter re-checks pending status and the
// submission timestamp so a fresh resubmission is never clobbered.
func (s *Store) ResetStale(ctx context.Context, id primitive.ObjectID, submittedBefore time.Time) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                     id,
			"status":                  models.StatusPending,
			"submission.submitted_at": bson.M{"$lte": submittedBefore},
		},
		bson.M{"$set": bson.M{
			"status":     models.StatusNotStarted,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// ClearExpiredSubmission removes the submission from a completed task if
// the stored file id still matches, guarding against a concurrent
// resubmission between the sweep's read and this write.
func (s *Store) ClearExpiredSubmission(ctx context.Context, id primitive.ObjectID, fileID string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":                id,
			"status":             models.StatusCompleted,
			"submission.file_id": fileID,
		},
		bson.M{
			"$unset": bson.M{"submission": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
