package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/lonelyhost/panel/internal/domain"
	"github.com/lonelyhost/panel/internal/ledger"
	"github.com/lonelyhost/panel/internal/provider"
	"github.com/lonelyhost/panel/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardHandler renders the full panel snapshot as HTML.
type DashboardHandler struct {
	store   *store.Store
	audit   *ledger.Log
	monitor *provider.ProcessMonitor
	tmpl    *template.Template
	logger  *slog.Logger
}

// NewDashboardHandler parses the embedded dashboard template.
func NewDashboardHandler(st *store.Store, audit *ledger.Log, monitor *provider.ProcessMonitor, logger *slog.Logger) *DashboardHandler {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	return &DashboardHandler{store: st, audit: audit, monitor: monitor, tmpl: tmpl, logger: logger}
}

type dashboardData struct {
	PanelName string
	Servers   []domain.Server
	Addons    []domain.Addon
	Themes    []domain.Theme
	Backups   []domain.Backup
	Databases []domain.Database
	Tasks     []domain.Task
	Players   []domain.Player
	Logs      []domain.LogLine
	Audit     []ledger.Entry
	Stats     *provider.ProcessStats
}

// Render handles GET /.
func (h *DashboardHandler) Render(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		PanelName: h.store.PanelName(),
		Servers:   h.store.Servers.List(),
		Addons:    h.store.Addons.List(),
		Themes:    h.store.Themes.List(),
		Backups:   h.store.Backups.List(),
		Databases: h.store.Databases.List(),
		Tasks:     h.store.Tasks.List(),
		Players:   h.store.Players.List(),
		Logs:      h.store.Logs.List(),
		Audit:     h.audit.List(),
	}

	// Monitor failures degrade the dashboard, they never fail it.
	if stats, err := h.monitor.Snapshot(r.Context()); err == nil {
		data.Stats = &stats
	} else {
		h.logger.Warn("process monitor snapshot failed", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.logger.Error("render dashboard", "error", err)
	}
}
