package adminstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("admins")}
}

var ErrDuplicateID = fmt.Errorf("%w: an admin with this id already exists", apperrors.ErrConflict)

// Create inserts a new admin. PasswordHash must already be hashed.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	a.ID = primitive.NewObjectID()
	a.BusinessID = strings.TrimSpace(a.BusinessID)
	a.FullName = strings.TrimSpace(a.FullName)

	if a.BusinessID == "" {
		return models.Admin{}, fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	if a.FullName == "" {
		return models.Admin{}, fmt.Errorf("%w: fullname is required", apperrors.ErrValidation)
	}
	if a.PasswordHash == "" {
		return models.Admin{}, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateID
		}
		return models.Admin{}, err
	}
	return a, nil
}

// GetByBusinessID loads an admin by the externally assigned id.
func (s *Store) GetByBusinessID(ctx context.Context, id string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: admin %q", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &a, nil
}

// List returns all admins ordered by full name.
func (s *Store) List(ctx context.Context) ([]models.Admin, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "fullname", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Admin
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update holds the mutable admin fields.
type Update struct {
	FullName string
	Domain   string
}

func (s *Store) UpdateProfile(ctx context.Context, id string, upd Update) error {
	set := bson.M{
		"fullname":   strings.TrimSpace(upd.FullName),
		"domain":     upd.Domain,
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: admin %q", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: admin %q", apperrors.ErrNotFound, id)
	}
	return nil
}
