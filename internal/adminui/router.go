// Package adminui is the administrator console: the user table with its
// moderation actions and the registration summary. Access goes through the
// same session state as the rest of the app; anyone who is not the
// configured administrator is silently sent back to the landing page.
package adminui

import (
	"log/slog"
	"net/http"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

type Opts struct {
	Logger *slog.Logger

	Admin *service.AdminService

	Sessions    *session.Registry
	CookieCodec auth.CookieCodec
	AdminEmail  string
}

func New(opts Opts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Admin == nil || opts.Sessions == nil || opts.AdminEmail == "" {
		return http.NotFoundHandler()
	}

	app := &app{
		logger:      logger,
		adminSvc:    opts.Admin,
		sessions:    opts.Sessions,
		cookieCodec: opts.CookieCodec,
		adminEmail:  opts.AdminEmail,
	}

	t, err := parseTemplates()
	if err != nil {
		logger.Error("adminui: parse templates failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	app.templates = t

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin", app.redirectAdmin)
	mux.HandleFunc("GET /admin/{$}", app.requireAdmin(app.handleDashboard))
	mux.HandleFunc("POST /admin/users/approve", app.requireAdmin(app.handleApprove))
	mux.HandleFunc("POST /admin/users/block", app.requireAdmin(app.handleBlock))
	mux.HandleFunc("POST /admin/users/allow-reset", app.requireAdmin(app.handleAllowReset))
	mux.HandleFunc("POST /admin/users/delete", app.requireAdmin(app.handleDelete))

	return mux
}

type app struct {
	logger *slog.Logger

	adminSvc *service.AdminService

	sessions    *session.Registry
	cookieCodec auth.CookieCodec
	adminEmail  string

	templates *templates
}

func (a *app) redirectAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/", http.StatusFound)
}

// requireAdmin routes the request through the session state machine. A
// non-admin never sees a denial page; the state lands somewhere else and the
// browser follows it there.
func (a *app) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, st, ok := a.currentState(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		visited := st.Visit(domain.RouteAdmin, a.adminEmail)
		a.sessions.Put(id, visited)
		if visited.Route != domain.RouteAdmin {
			http.Redirect(w, r, redirectPath(visited.Route), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (a *app) currentState(r *http.Request) (string, session.State, bool) {
	id, ok := a.cookieCodec.ReadSessionID(r)
	if !ok {
		return "", session.State{}, false
	}
	st, ok := a.sessions.Get(id)
	if !ok {
		return "", session.State{}, false
	}
	return id, st, true
}

// redirectPath mirrors the user-facing URL scheme; adminui is mounted
// separately and cannot import it from webui.
func redirectPath(route domain.Route) string {
	switch route {
	case domain.RouteLogin:
		return "/login"
	case domain.RouteForceChange:
		return "/password"
	case domain.RouteDemo:
		return "/demo"
	case domain.RouteApp:
		return "/app/"
	default:
		return "/"
	}
}
