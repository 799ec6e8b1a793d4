// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/lifecycle"
	"github.com/mentorstack/mentorhub/internal/app/maintenance"
	adminstore "github.com/mentorstack/mentorhub/internal/app/store/admins"
	completedstore "github.com/mentorstack/mentorhub/internal/app/store/completed"
	taskstore "github.com/mentorstack/mentorhub/internal/app/store/tasks"
	userstore "github.com/mentorstack/mentorhub/internal/app/store/users"
)

// appState holds the long-lived objects built in Startup and consumed by
// BuildHandler and Shutdown. WAFFLE's hook signatures do not thread a
// custom value between those hooks, so the package carries it.
type appState struct {
	Users     *userstore.Store
	Tasks     *taskstore.Store
	Admins    *adminstore.Store
	Completed *completedstore.Store

	Lifecycle *lifecycle.Service
	Runner    *maintenance.Runner
	Worker    *maintenance.Worker
}

var state appState

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It builds the stores, the lifecycle service, and the maintenance
// runner, and starts the daily worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	state.Users = userstore.New(deps.MongoDatabase)
	state.Tasks = taskstore.New(deps.MongoDatabase)
	state.Admins = adminstore.New(deps.MongoDatabase)
	state.Completed = completedstore.New(deps.MongoDatabase)

	state.Lifecycle = lifecycle.New(state.Tasks, state.Users, state.Completed, deps.Storage, logger)

	state.Runner = maintenance.NewRunner(
		state.Users, state.Tasks, deps.Storage, deps.Catalog,
		maintenance.Config{
			CurriculumTitle:    appCfg.CurriculumTitle,
			CompletedRetention: time.Duration(appCfg.CompletedRetentionDays) * 24 * time.Hour,
			PendingReset:       time.Duration(appCfg.PendingResetDays) * 24 * time.Hour,
		},
		logger)

	// Validated in ValidateConfig.
	loc, err := time.LoadLocation(appCfg.MaintenanceTimezone)
	if err != nil {
		return err
	}

	state.Worker = maintenance.NewWorker(state.Runner, logger, appCfg.MaintenanceHour, loc)
	state.Worker.Start()

	return nil
}
