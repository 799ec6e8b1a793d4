// Package metrics exposes Prometheus counters for the maintenance
// scheduler. Request-level metrics are intentionally not collected here;
// the service sits behind infrastructure that already measures HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenanceRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorhub_maintenance_runs_total",
		Help: "Count of maintenance runs by trigger and result",
	}, []string{"trigger", "result"})

	curriculumTasksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_curriculum_tasks_created_total",
		Help: "Curriculum tasks created by the backfill phase",
	})

	curriculumTasksAdvanced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_curriculum_tasks_advanced_total",
		Help: "Curriculum tasks moved to the next catalog problem",
	})

	submissionFilesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_submission_files_deleted_total",
		Help: "Submission blobs deleted by the retention sweep",
	})

	staleSubmissionsReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mentorhub_stale_submissions_reset_total",
		Help: "Pending tasks reset to not_started by the retention sweep",
	})

	maintenanceEntityErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentorhub_maintenance_entity_errors_total",
		Help: "Per-entity failures tolerated during maintenance, by phase",
	}, []string{"phase"})
)

// ObserveRun increments the run counter for the given trigger
// ("worker" or "cron") and result ("ok" or "error").
func ObserveRun(trigger, result string) {
	maintenanceRuns.WithLabelValues(trigger, result).Inc()
}

// AddCreated records curriculum tasks created by Phase A.
func AddCreated(n int) { curriculumTasksCreated.Add(float64(n)) }

// AddAdvanced records curriculum tasks advanced by Phase B.
func AddAdvanced(n int) { curriculumTasksAdvanced.Add(float64(n)) }

// AddFilesDeleted records blobs deleted by Phase C.
func AddFilesDeleted(n int) { submissionFilesDeleted.Add(float64(n)) }

// AddReset records pending tasks reset by Phase C.
func AddReset(n int) { staleSubmissionsReset.Add(float64(n)) }

// ObserveEntityError records one tolerated per-entity failure.
func ObserveEntityError(phase string) {
	maintenanceEntityErrors.WithLabelValues(phase).Inc()
}
