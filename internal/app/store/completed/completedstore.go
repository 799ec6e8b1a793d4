// Package completedstore keeps the journal of verified task completions.
// Entries outlive the tasks they came from, so mentors keep a history even
// after a task or its owner is deleted.
package completedstore

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
	return &Store{c: db.Collection("completed_tasks")}
}

// Create records a completion entry.
func (s *Store) Create(ctx context.Context, e models.CompletedTask) (models.CompletedTask, error) {
	e.ID = primitive.NewObjectID()
	e.TaskRef = strings.TrimSpace(e.TaskRef)
	e.UserID = strings.TrimSpace(e.UserID)

	if e.TaskRef == "" {
		return models.CompletedTask{}, fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	if e.UserID == "" {
		return models.CompletedTask{}, fmt.Errorf("%w: user_id is required", apperrors.ErrValidation)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.CompletedTask{}, err
	}
	return e, nil
}

// GetByID loads one entry.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CompletedTask, error) {
	var e models.CompletedTask
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: completed task %s", apperrors.ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return &e, nil
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]models.CompletedTask, error) {
	return s.find(ctx, bson.M{})
}

// ListByUser returns a mentee's entries, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.CompletedTask, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.CompletedTask, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.CompletedTask
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDetails rewrites the free-form details field.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, details string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"details": details}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: completed task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}

// Delete removes one entry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: completed task %s", apperrors.ErrNotFound, id.Hex())
	}
	return nil
}
