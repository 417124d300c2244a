package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/valuable-brands/backoffice/internal/awards"
	"github.com/valuable-brands/backoffice/internal/comms"
	"github.com/valuable-brands/backoffice/internal/crm"
	financehttp "github.com/valuable-brands/backoffice/internal/finance/http"
	"github.com/valuable-brands/backoffice/internal/members"
	"github.com/valuable-brands/backoffice/internal/observability"
	"github.com/valuable-brands/backoffice/internal/users"
	"github.com/valuable-brands/backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	FinanceHandler *financehttp.Handler
	CRMHandler     *crm.Handler
	CommsHandler   *comms.Handler
	AwardsHandler  *awards.Handler
	MembersHandler *members.Handler
	UsersHandler   *users.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.FinanceHandler != nil {
		params.FinanceHandler.MountRoutes(r)
	}
	if params.CRMHandler != nil {
		params.CRMHandler.MountRoutes(r)
	}
	if params.CommsHandler != nil {
		params.CommsHandler.MountRoutes(r)
	}
	if params.AwardsHandler != nil {
		params.AwardsHandler.MountRoutes(r)
	}
	if params.MembersHandler != nil {
		params.MembersHandler.MountRoutes(r)
	}
	if params.UsersHandler != nil {
		params.UsersHandler.MountRoutes(r)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
