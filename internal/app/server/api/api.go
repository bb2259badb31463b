// POST /user/register          # Register (public)
// POST /user/login             # Login (public)
// POST /user/logout            # Revoke session (auth)
// GET  /api/v1/jobs            # List job applications (auth)
// POST /api/v1/jobs            # Create job application (auth)
// PUT  /api/v1/jobs/{id}       # Update job application (auth)
// DELETE /api/v1/jobs/{id}     # Delete job application (auth)
// GET  /api/v1/jobs/export     # CSV export (auth)
// GET  /api/v1/jobs/stats      # Analytics (auth)
// GET  /user/me                # Authenticated profile (auth)
// GET  /api/v1/admin/users     # Account list (auth, admin role)
// GET  /api/v1/admin/users/{id}/jobs  # One account's jobs (auth, admin role)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	adminAPI "applytrack/internal/app/server/api/http/admin"
	healthAPI "applytrack/internal/app/server/api/http/health"
	jobAPI "applytrack/internal/app/server/api/http/job"
	"applytrack/internal/app/server/api/http/middleware"
	"applytrack/internal/app/server/api/http/middleware/auth"
	"applytrack/internal/app/server/api/http/middleware/logger"
	userAPI "applytrack/internal/app/server/api/http/user"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/session"
	"applytrack/internal/domain/user"
	"applytrack/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Job    *jobAPI.Handler
	Admin  *adminAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("ApplyTrack API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Job.SetupRoutes(API)
	h.Admin.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage.Pool(), log)
	sessionService := session.NewService(sessionRepo, log)

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)

	authMW := auth.New(sessionService, userService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	openMWs := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, openMWs, middlewares.GetAllAndClear())

	jobRepo := postgres.NewJobRepository(storage.Pool(), log)
	jobService := job.NewService(jobRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	jobHandler := jobAPI.NewHandler(jobService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	adminHandler := adminAPI.NewHandler(userService, jobService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Job:    jobHandler,
		Admin:  adminHandler,
	}
}
