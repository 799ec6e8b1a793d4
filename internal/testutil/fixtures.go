package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a mentee with the given business id and mentor.
func (f *Fixtures) CreateUser(ctx context.Context, businessID, fullName, mentor string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		BusinessID:   businessID,
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Domain:       "web",
		Mentor:       mentor,
		PasswordHash: "$2a$10$test.hash.not.a.real.password.hash.00000000000",
		TaskAssign:   []primitive.ObjectID{},
		TaskDone:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin inserts an admin with the given business id.
func (f *Fixtures) CreateAdmin(ctx context.Context, businessID, fullName string) models.Admin {
	f.t.Helper()

	now := time.Now().UTC()
	admin := models.Admin{
		ID:           primitive.NewObjectID(),
		BusinessID:   businessID,
		FullName:     fullName,
		Domain:       "web",
		PasswordHash: "$2a$10$test.hash.not.a.real.password.hash.00000000000",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

// CreateTask inserts a task owned by the given mentee.
func (f *Fixtures) CreateTask(ctx context.Context, ownerID, title string, status models.TaskStatus) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTaskWithSubmission inserts a task carrying a submission that was
// submitted at the given time.
func (f *Fixtures) CreateTaskWithSubmission(ctx context.Context, ownerID, title string, status models.TaskStatus, submittedAt time.Time) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:      primitive.NewObjectID(),
		OwnerID: ownerID,
		Title:   title,
		Status:  status,
		Submission: &models.Submission{
			FileID:      "submissions/2026/01/" + primitive.NewObjectID().Hex() + ".pdf",
			FileName:    "work.pdf",
			FileType:    "application/pdf",
			SubmittedBy: ownerID,
			SubmittedAt: submittedAt,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
