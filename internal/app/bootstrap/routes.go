// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adminsfeature "github.com/mentorstack/mentorhub/internal/app/features/admins"
	completedfeature "github.com/mentorstack/mentorhub/internal/app/features/completedtasks"
	cronfeature "github.com/mentorstack/mentorhub/internal/app/features/cron"
	healthfeature "github.com/mentorstack/mentorhub/internal/app/features/health"
	tasksfeature "github.com/mentorstack/mentorhub/internal/app/features/tasks"
	usersfeature "github.com/mentorstack/mentorhub/internal/app/features/users"
	"github.com/mentorstack/mentorhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed, so the stores and services built
// in Startup are available here.
//
// The API is JSON under /api, consumed by the SPA front end; /health and
// /metrics sit at the root for infrastructure.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// CORS for the SPA front end. Credentials are allowed because auth
	// rides on the session cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Loads the session user into context if signed in.
	r.Use(auth.LoadSessionUser)

	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Mount("/users", usersfeature.Routes(
			usersfeature.NewHandler(state.Users, state.Lifecycle, logger)))
		api.Mount("/admin", adminsfeature.Routes(
			adminsfeature.NewHandler(state.Admins, state.Tasks, state.Lifecycle, logger)))
		api.Mount("/tasks", tasksfeature.Routes(
			tasksfeature.NewHandler(state.Tasks, state.Lifecycle, deps.Storage, logger)))
		api.Mount("/completed-tasks", completedfeature.Routes(
			completedfeature.NewHandler(state.Completed, logger)))
		api.Mount("/cron", cronfeature.Routes(
			cronfeature.NewHandler(state.Runner, appCfg.CronSecret, logger)))
	})

	return r, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
