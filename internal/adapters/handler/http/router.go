package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/electoral/internal/core/domain"
)

type Handlers struct {
	Auth     *AuthHandler
	Window   *WindowHandler
	Config   *ConfigHandler
	Voters   *VoterHandler
	Stations *StationHandler
	Votes    *VoteHandler
	Reports  *ReportHandler
}

type Options struct {
	Logger      *slog.Logger
	Tokens      TokenValidator
	CORSOrigins []string
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func NewHandler(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger))
	r.Use(CORS(opts.CORSOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	authenticate := Authenticate(opts.Tokens, opts.Logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/president", h.Auth.PresidentAccess)
		r.Post("/logout", h.Auth.Logout)
		r.With(authenticate).Get("/me", h.Auth.Me)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/voting-window", h.Window.Status)

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(RequireRole(domain.RoleSuperAdmin))

			r.Route("/config", func(r chi.Router) {
				r.Get("/", h.Config.Get)
				r.Put("/", h.Config.Update)
				r.Post("/reset", h.Config.Reset)
			})

			r.Route("/voters", func(r chi.Router) {
				r.Get("/", h.Voters.List)
				r.Delete("/", h.Voters.ClearAll)
				r.Get("/export", h.Voters.Export)
				r.Post("/import", h.Voters.Import)
				r.Get("/{nationalID}", h.Voters.Get)
				r.Put("/{nationalID}/enabled", h.Voters.SetEnabled)
				r.Post("/{nationalID}/toggle", h.Voters.Toggle)
			})

			r.Route("/stations", func(r chi.Router) {
				r.Post("/", h.Stations.Create)
				r.Get("/", h.Stations.List)
				r.Delete("/", h.Stations.DeleteAll)
				r.Post("/open-all", h.Stations.OpenAll)
				r.Post("/close-all", h.Stations.CloseAll)
				r.Post("/{id}/toggle", h.Stations.Toggle)
			})

			r.Get("/reports/{type}", h.Reports.Get)
		})

		r.Route("/president", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(RequireRole(domain.RolePresident))

			r.Get("/station", h.Stations.Current)
			r.Post("/station/toggle", h.Stations.ToggleCurrent)
			r.Get("/voters/{nationalID}", h.Votes.LookupVoter)
			r.Post("/votes", h.Votes.Cast)
		})
	})

	return r
}
