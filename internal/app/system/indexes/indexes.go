// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := ensureTasks(ctx, db); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureCompletedTasks(ctx, db); err != nil {
		problems = append(problems, "completed_tasks: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_business_id"),
		},
		{
			Keys:    bson.D{{Key: "fullname", Value: 1}},
			Options: options.Index().SetName("by_fullname"),
		},
		{
			Keys:    bson.D{{Key: "mentor", Value: 1}},
			Options: options.Index().SetName("by_mentor"),
		},
	})
	return err
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_business_id"),
		},
	})
	return err
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("tasks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// owner listings and the per-owner curriculum lookup
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetName("by_owner_title"),
		},
		{
			// Phase B: completed curriculum tasks
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "dsa_problem_id", Value: 1}},
			Options: options.Index().SetName("by_status_problem"),
		},
		{
			// Phase C: submission retention sweep
			Keys:    bson.D{{Key: "submission.file_id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("by_submission_file"),
		},
		{
			Keys:    bson.D{{Key: "is_global", Value: 1}},
			Options: options.Index().SetName("by_global"),
		},
	})
	return err
}

func ensureCompletedTasks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("completed_tasks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("by_task_ref"),
		},
	})
	return err
}
