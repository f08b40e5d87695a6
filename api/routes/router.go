package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taketwocare/solecare-backend/api/controllers"
	"github.com/taketwocare/solecare-backend/api/middleware"
	"github.com/taketwocare/solecare-backend/internal/auth"
	"github.com/taketwocare/solecare-backend/internal/entries"
	"github.com/taketwocare/solecare-backend/internal/media"
	"github.com/taketwocare/solecare-backend/internal/reports"
	"github.com/taketwocare/solecare-backend/pkg/auth/session"
	"github.com/taketwocare/solecare-backend/pkg/config"
	"github.com/taketwocare/solecare-backend/pkg/logger"
	"github.com/taketwocare/solecare-backend/pkg/redis"
)

// Pinger is the health check surface each dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger  Pinger
	GCSPinger Pinger
	Redis     *redis.Client

	Sessions session.AccessSessionChecker

	Auth    *auth.Service
	Entries *entries.Service
	Media   *media.Service
	Reports *reports.Service
}

// NewRouter wires the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.Redis, deps.GCSPinger))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/api/v1/entries", func(r chi.Router) {
			r.Get("/", controllers.EntriesList(deps.Entries, logg))
			r.Post("/", controllers.EntryCreate(deps.Entries, logg))
			r.Route("/{entryId}", func(r chi.Router) {
				r.Get("/", controllers.EntryGet(deps.Entries, logg))
				r.Patch("/", controllers.EntryPatch(deps.Entries, logg))
				r.Post("/release", controllers.EntryRelease(deps.Entries, logg))
				r.Post("/done", controllers.EntryDone(deps.Entries, logg))
				r.Delete("/", controllers.EntrySoftDelete(deps.Entries, logg))
			})
		})

		r.Route("/api/v1/trash", func(r chi.Router) {
			r.Get("/", controllers.TrashList(deps.Entries, logg))
			r.Post("/{entryId}/restore", controllers.TrashRestore(deps.Entries, logg))
			r.Delete("/{entryId}", controllers.TrashPermanentDelete(deps.Entries, logg))
		})

		r.Post("/api/v1/media/upload", controllers.MediaUpload(deps.Media, logg))

		r.Route("/api/v1/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportsSummary(deps.Reports, logg))
			r.Get("/revenue", controllers.ReportsRevenue(deps.Reports, logg))
			r.Get("/export.csv", controllers.ReportsExportCSV(deps.Reports, logg))
		})
	})

	return r
}
