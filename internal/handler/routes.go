package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the panel's route table: one POST route per action and
// the HTML dashboard at the root.
func NewRouter(actions *ActionHandler, dashboard *DashboardHandler, authn *AuthHandler, logger *slog.Logger, corsOrigins string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(CORSWithOrigins(corsOrigins))

	r.Get("/", dashboard.Render)
	r.Get("/health", HealthHandler())

	r.Group(func(r chi.Router) {
		r.Use(JSONContentType)

		r.Post("/auth/login", authn.Login)

		r.Route("/servers", func(r chi.Router) {
			r.Post("/start", actions.StartServer)
			r.Post("/stop", actions.StopServer)
			r.Post("/change-version", actions.ChangeVersion)
			r.Post("/adjust-resources", actions.AdjustResources)
		})

		r.Post("/addons/install", actions.InstallAddon)
		r.Post("/themes/purchase", actions.PurchaseTheme)

		r.Route("/backups", func(r chi.Router) {
			r.Post("/create", actions.CreateBackup)
			r.Post("/restore", actions.RestoreBackup)
		})

		r.Post("/databases/manage", actions.ManageDatabase)
		r.Post("/tasks/run", actions.RunTask)

		r.Route("/players", func(r chi.Router) {
			r.Post("/kick", actions.KickPlayer)
			r.Post("/ban", actions.BanPlayer)
		})

		r.Route("/economy", func(r chi.Router) {
			r.Post("/add", actions.AddFunds)
			r.Post("/remove", actions.RemoveFunds)
		})

		r.Post("/ai/suggestions", actions.AISuggestions)
		r.Post("/world/edit", actions.WorldEdit)
	})

	return r
}
