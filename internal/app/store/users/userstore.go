package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("users")}
}

// ErrDuplicateID is returned when creating a user whose business id is
// already taken.
var ErrDuplicateID = fmt.Errorf("%w: a user with this id already exists", apperrors.ErrConflict)

// Create inserts a new mentee after normalizing & validating fields.
// Task reference arrays start empty; PasswordHash must already be hashed.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.BusinessID = strings.TrimSpace(u.BusinessID)
	u.FullName = strings.TrimSpace(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)

	if u.BusinessID == "" {
		return models.User{}, fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	if u.FullName == "" {
		return models.User{}, fmt.Errorf("%w: fullname is required", apperrors.ErrValidation)
	}
	if u.PasswordHash == "" {
		return models.User{}, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	if u.TaskAssign == nil {
		u.TaskAssign = []primitive.ObjectID{}
	}
	if u.TaskDone == nil {
		u.TaskDone = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateID
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByBusinessID loads a user by the externally assigned id.
func (s *Store) GetByBusinessID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &u, nil
}

// GetByFullName loads a user by exact full name; used by login.
func (s *Store) GetByFullName(ctx context.Context, fullname string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"fullname": fullname}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, fullname)
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by case-folded name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "fullname_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByMentor returns the mentees assigned to the given mentor id.
func (s *Store) ListByMentor(ctx context.Context, mentorID string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"mentor": mentorID},
		options.Find().SetSort(bson.D{{Key: "fullname_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the mutable profile fields.
type Update struct {
	FullName string
	Domain   string
	Mentor   string
}

// UpdateProfile updates a mentee's profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id string, upd Update) error {
	set := bson.M{
		"fullname":    strings.TrimSpace(upd.FullName),
		"fullname_ci": text.Fold(upd.FullName),
		"domain":      upd.Domain,
		"mentor":      upd.Mentor,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, id)
	}
	return nil
}

// Delete removes a user document. Task cleanup is the lifecycle service's
// job; this only touches the users collection.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, id)
	}
	return nil
}

// PushAssigned appends a task reference to the user's assigned list.
// $addToSet keeps a retried call from duplicating the reference.
func (s *Store) PushAssigned(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$addToSet": bson.M{"task_assign": taskID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	return nil
}

// MoveAssignedToDone moves a task reference from the assigned list to the
// done list in one update, preserving the invariant that a reference lives
// in at most one of the two arrays.
func (s *Store) MoveAssignedToDone(ctx context.Context, userID string, taskID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$pull":     bson.M{"task_assign": taskID},
		"$addToSet": bson.M{"task_done": taskID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	return nil
}

// PullTaskRefs removes a task reference from both arrays. Used by task
// deletion cascade; missing user is not an error there, so the caller gets
// the matched count.
func (s *Store) PullTaskRefs(ctx context.Context, userID string, taskID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$pull": bson.M{
			"task_assign": taskID,
			"task_done":   taskID,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// MarkAttendance increments the attendance count for the given day key.
func (s *Store) MarkAttendance(ctx context.Context, userID, day string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$inc": bson.M{"attendance." + day: 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	return nil
}

// UnmarkAttendance clears the attendance entry for the given day key.
func (s *Store) UnmarkAttendance(ctx context.Context, userID, day string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"id": userID}, bson.M{
		"$unset": bson.M{"attendance." + day: ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, userID)
	}
	return nil
}
