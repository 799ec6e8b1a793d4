// Package maintenance implements the daily upkeep run: curriculum
// backfill, curriculum advancement, and the submission retention sweep.
// One Runner backs both entry points (the in-process worker and the cron
// endpoint) so the two triggers can never drift apart in behavior.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/catalog"
	"github.com/mentorstack/mentorhub/internal/app/system/metrics"
	"github.com/mentorstack/mentorhub/internal/domain/models"
)

// UserStore is the slice of the user store the runner needs.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	PushAssigned(ctx context.Context, userID string, taskID primitive.ObjectID) error
}

// TaskStore is the slice of the task store the runner needs.
type TaskStore interface {
	Create(ctx context.Context, t models.Task) (models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	FindCurriculumTask(ctx context.Context, ownerID, title string) (*models.Task, error)
	ListCompletedCurriculum(ctx context.Context, title string) ([]models.Task, error)
	Advance(ctx context.Context, id primitive.ObjectID, problemID int, description string, resources map[string]string) error
	ListWithSubmissions(ctx context.Context, excludeTitle string) ([]models.Task, error)
	ResetStale(ctx context.Context, id primitive.ObjectID, submittedBefore time.Time) (bool, error)
	ClearExpiredSubmission(ctx context.Context, id primitive.ObjectID, fileID string) (bool, error)
}

// BlobStore deletes stored submission files.
type BlobStore interface {
	Delete(ctx context.Context, path string) error
}

// Config holds the knobs the run depends on.
type Config struct {
	CurriculumTitle    string
	CompletedRetention time.Duration // completed submissions older than this lose their files
	PendingReset       time.Duration // pending submissions older than this go back to not_started
}

// Report summarizes one run. Errors counts tolerated per-entity failures;
// the run itself only fails when a phase cannot even list its entities.
type Report struct {
	UsersProcessed int       `json:"users_processed"`
	TasksCreated   int       `json:"tasks_created"`
	TasksAdvanced  int       `json:"tasks_advanced"`
	FilesDeleted   int       `json:"files_deleted"`
	TasksReset     int       `json:"tasks_reset"`
	Errors         int       `json:"errors"`
	StartedAt      time.Time `json:"started_at"`
	Duration       string    `json:"duration"`
}

// Runner executes maintenance runs. Safe for concurrent use; every step
// is idempotent or guarded by a conditional update, so an overlapping run
// does double work at worst, never double effects.
type Runner struct {
	Users   UserStore
	Tasks   TaskStore
	Blobs   BlobStore
	Catalog *catalog.Catalog
	Cfg     Config
	Log     *zap.Logger

	now func() time.Time // test hook
}

func NewRunner(users UserStore, tasks TaskStore, blobs BlobStore, cat *catalog.Catalog, cfg Config, logger *zap.Logger) *Runner {
	return &Runner{
		Users:   users,
		Tasks:   tasks,
		Blobs:   blobs,
		Catalog: cat,
		Cfg:     cfg,
		Log:     logger,
		now:     time.Now,
	}
}

// Run executes the three phases in sequence. A phase that cannot list its
// entities is logged and skipped; the remaining phases still run. trigger
// is "worker" or "cron", used for logging and metrics only.
func (r *Runner) Run(ctx context.Context, trigger string) Report {
	start := r.now().UTC()
	rep := Report{StartedAt: start}

	r.Log.Info("maintenance run starting", zap.String("trigger", trigger))

	r.backfill(ctx, &rep)
	r.advance(ctx, &rep)
	r.sweep(ctx, &rep)

	rep.Duration = r.now().UTC().Sub(start).Round(time.Millisecond).String()

	result := "ok"
	if rep.Errors > 0 {
		result = "error"
	}
	metrics.ObserveRun(trigger, result)

	r.Log.Info("maintenance run finished",
		zap.String("trigger", trigger),
		zap.Int("users_processed", rep.UsersProcessed),
		zap.Int("tasks_created", rep.TasksCreated),
		zap.Int("tasks_advanced", rep.TasksAdvanced),
		zap.Int("files_deleted", rep.FilesDeleted),
		zap.Int("tasks_reset", rep.TasksReset),
		zap.Int("errors", rep.Errors),
		zap.String("duration", rep.Duration))

	return rep
}

// backfill ensures every user has a curriculum task, seeded from the
// first catalog entry. Dedup key is owner + curriculum title.
func (r *Runner) backfill(ctx context.Context, rep *Report) {
	users, err := r.Users.List(ctx)
	if err != nil {
		r.Log.Error("backfill: list users failed", zap.Error(err))
		rep.Errors++
		metrics.ObserveEntityError("backfill")
		return
	}

	first := r.Catalog.First()
	for _, u := range users {
		rep.UsersProcessed++

		existing, err := r.Tasks.FindCurriculumTask(ctx, u.BusinessID, r.Cfg.CurriculumTitle)
		if err != nil {
			r.Log.Warn("backfill: curriculum lookup failed",
				zap.String("user_id", u.BusinessID), zap.Error(err))
			rep.Errors++
			metrics.ObserveEntityError("backfill")
			continue
		}
		if existing != nil {
			continue
		}

		task, err := r.Tasks.Create(ctx, models.Task{
			OwnerID:      u.BusinessID,
			Title:        r.Cfg.CurriculumTitle,
			Description:  describe(first),
			Resources:    catalog.Resources(first),
			DSAProblemID: first.ID,
			Status:       models.StatusNotStarted,
		})
		if err != nil {
			r.Log.Warn("backfill: create curriculum task failed",
				zap.String("user_id", u.BusinessID), zap.Error(err))
			rep.Errors++
			metrics.ObserveEntityError("backfill")
			continue
		}

		if err := r.Users.PushAssigned(ctx, u.BusinessID, task.ID); err != nil {
			r.Log.Warn("backfill: push task reference failed",
				zap.String("user_id", u.BusinessID),
				zap.String("task_id", task.ID.Hex()),
				zap.Error(err))
			if _, delErr := r.Tasks.Delete(ctx, task.ID); delErr != nil {
				r.Log.Warn("backfill: rollback delete failed",
					zap.String("task_id", task.ID.Hex()), zap.Error(delErr))
			}
			rep.Errors++
			metrics.ObserveEntityError("backfill")
			continue
		}

		rep.TasksCreated++
	}

	metrics.AddCreated(rep.TasksCreated)
}

// advance moves every verified curriculum task to the next catalog
// problem. A task on the last problem is left untouched.
func (r *Runner) advance(ctx context.Context, rep *Report) {
	tasks, err := r.Tasks.ListCompletedCurriculum(ctx, r.Cfg.CurriculumTitle)
	if err != nil {
		r.Log.Error("advance: list completed curriculum tasks failed", zap.Error(err))
		rep.Errors++
		metrics.ObserveEntityError("advance")
		return
	}

	for _, t := range tasks {
		if _, known := r.Catalog.ByID(t.DSAProblemID); !known {
			r.Log.Warn("advance: unknown catalog id, skipping",
				zap.String("task_id", t.ID.Hex()),
				zap.Int("problem_id", t.DSAProblemID))
			rep.Errors++
			metrics.ObserveEntityError("advance")
			continue
		}

		next, ok := r.Catalog.Next(t.DSAProblemID)
		if !ok {
			// Curriculum finished; nothing to advance to.
			continue
		}

		err := r.Tasks.Advance(ctx, t.ID, next.ID, describe(next), catalog.Resources(next))
		if err != nil {
			// Most likely the mentee touched the task between our read
			// and this write; the next run will pick it up again.
			r.Log.Warn("advance: update failed",
				zap.String("task_id", t.ID.Hex()),
				zap.Int("next_problem_id", next.ID),
				zap.Error(err))
			rep.Errors++
			metrics.ObserveEntityError("advance")
			continue
		}
		rep.TasksAdvanced++
	}

	metrics.AddAdvanced(rep.TasksAdvanced)
}

// sweep reclaims storage: completed submissions past the retention window
// lose their files (status stays completed), and pending submissions past
// the reset window go back to not_started with the stale submission left
// in place for reference.
func (r *Runner) sweep(ctx context.Context, rep *Report) {
	tasks, err := r.Tasks.ListWithSubmissions(ctx, r.Cfg.CurriculumTitle)
	if err != nil {
		r.Log.Error("sweep: list submissions failed", zap.Error(err))
		rep.Errors++
		metrics.ObserveEntityError("sweep")
		return
	}

	now := r.now().UTC()
	for _, t := range tasks {
		if !t.HasSubmission() {
			continue
		}
		age := now.Sub(t.Submission.SubmittedAt)

		switch {
		case t.Status == models.StatusCompleted && age >= r.Cfg.CompletedRetention:
			// Record first, then the blob: if we crash in between, the
			// worst case is a leaked file, never a dangling reference.
			cleared, err := r.Tasks.ClearExpiredSubmission(ctx, t.ID, t.Submission.FileID)
			if err != nil {
				r.Log.Warn("sweep: clear submission failed",
					zap.String("task_id", t.ID.Hex()), zap.Error(err))
				rep.Errors++
				metrics.ObserveEntityError("sweep")
				continue
			}
			if !cleared {
				continue
			}
			if err := r.Blobs.Delete(ctx, t.Submission.FileID); err != nil {
				r.Log.Warn("sweep: delete submission file failed",
					zap.String("task_id", t.ID.Hex()),
					zap.String("file_id", t.Submission.FileID),
					zap.Error(err))
				rep.Errors++
				metrics.ObserveEntityError("sweep")
				continue
			}
			rep.FilesDeleted++

		case t.Status == models.StatusPending && age >= r.Cfg.PendingReset:
			reset, err := r.Tasks.ResetStale(ctx, t.ID, now.Add(-r.Cfg.PendingReset))
			if err != nil {
				r.Log.Warn("sweep: reset stale submission failed",
					zap.String("task_id", t.ID.Hex()), zap.Error(err))
				rep.Errors++
				metrics.ObserveEntityError("sweep")
				continue
			}
			if reset {
				rep.TasksReset++
			}
		}
	}

	metrics.AddFilesDeleted(rep.FilesDeleted)
	metrics.AddReset(rep.TasksReset)
}

// describe renders the task description shown to the mentee for a
// catalog entry.
func describe(e catalog.Entry) string {
	return fmt.Sprintf("Solve problem #%d on %s.", e.ID, e.Platform)
}
