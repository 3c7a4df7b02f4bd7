// Package webui renders the user-facing views and drives the session router:
// every request resolves the browser session, validates the navigation
// against the current state, and either renders the bound view or redirects
// to wherever the state machine actually landed.
package webui

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

type Opts struct {
	Logger *slog.Logger

	Auth     *service.AuthService
	Activity *service.ActivityService
	Goals    *service.GoalService

	Sessions     *session.Registry
	CookieCodec  auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration
	AdminEmail   string
}

func New(opts Opts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &app{
		logger:       logger,
		authSvc:      opts.Auth,
		activitySvc:  opts.Activity,
		goalSvc:      opts.Goals,
		sessions:     opts.Sessions,
		cookieCodec:  opts.CookieCodec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		adminEmail:   opts.AdminEmail,
	}

	t, err := parseTemplates()
	if err != nil {
		logger.Error("webui: parse templates failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	app.templates = t

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", app.onRoute(domain.RoutePublic, app.handlePublic))
	mux.HandleFunc("GET /login", app.onRoute(domain.RouteLogin, app.handleLoginGet))
	mux.HandleFunc("POST /login", app.handleLoginPost)
	mux.HandleFunc("GET /register", app.onRoute(domain.RouteLogin, app.handleRegisterGet))
	mux.HandleFunc("POST /register", app.handleRegisterPost)
	mux.HandleFunc("GET /forgot", app.onRoute(domain.RouteForgotPassword, app.handleForgotGet))
	mux.HandleFunc("POST /forgot", app.handleForgotPost)
	mux.HandleFunc("GET /password", app.onRoute(domain.RouteForceChange, app.handleForceChangeGet))
	mux.HandleFunc("POST /password", app.handleForceChangePost)
	mux.HandleFunc("POST /demo", app.handleDemoEnter)
	mux.HandleFunc("GET /demo", app.handleDemoGet)
	mux.HandleFunc("POST /demo/planner", app.handleDemoPlannerPost)
	mux.HandleFunc("POST /demo/goals", app.handleDemoGoalPost)
	mux.HandleFunc("POST /logout", app.handleLogoutPost)

	mux.HandleFunc("GET /app", app.redirectApp)
	mux.HandleFunc("GET /app/{$}", app.onRoute(domain.RouteApp, app.handleDashboard))
	mux.HandleFunc("GET /app/planner", app.onRoute(domain.RouteApp, app.handlePlannerGet))
	mux.HandleFunc("POST /app/planner", app.onRoute(domain.RouteApp, app.handlePlannerPost))
	mux.HandleFunc("GET /app/reports", app.onRoute(domain.RouteApp, app.handleReports))
	mux.HandleFunc("GET /app/insights", app.onRoute(domain.RouteApp, app.handleInsights))
	mux.HandleFunc("GET /app/goals", app.onRoute(domain.RouteApp, app.handleGoalsGet))
	mux.HandleFunc("POST /app/goals", app.onRoute(domain.RouteApp, app.handleGoalAdd))
	mux.HandleFunc("POST /app/goals/done", app.onRoute(domain.RouteApp, app.handleGoalDone))

	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		logger.Error("webui: static fs setup failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	mux.Handle("GET /static/", static)
	mux.Handle("HEAD /static/", static)

	return mux
}

type app struct {
	logger *slog.Logger

	authSvc     *service.AuthService
	activitySvc *service.ActivityService
	goalSvc     *service.GoalService

	sessions     *session.Registry
	cookieCodec  auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	adminEmail   string

	templates *templates
}

func (a *app) redirectApp(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app/", http.StatusFound)
}

// routePath maps a session route to its URL.
func routePath(route domain.Route) string {
	switch route {
	case domain.RouteLogin:
		return "/login"
	case domain.RouteForgotPassword:
		return "/forgot"
	case domain.RouteForceChange:
		return "/password"
	case domain.RouteDemo:
		return "/demo"
	case domain.RouteApp:
		return "/app/"
	case domain.RouteAdmin:
		return "/admin/"
	default:
		return "/"
	}
}

// currentState resolves the browser session, if any. Anonymous requests get
// a fresh in-flight state that is only registered once a transition needs to
// survive the request (login, demo entry).
func (a *app) currentState(r *http.Request) (string, session.State) {
	if id, ok := a.cookieCodec.ReadSessionID(r); ok {
		if st, ok := a.sessions.Get(id); ok {
			return id, st
		}
	}
	return "", session.New()
}

// ensureSession registers the session and sets the cookie when the request
// arrived without one.
func (a *app) ensureSession(w http.ResponseWriter, r *http.Request) (string, session.State) {
	id, st := a.currentState(r)
	if id != "" {
		return id, st
	}
	id, st = a.sessions.Create()
	auth.SetSessionCookie(w, a.cookieCodec.Sign(id), a.sessionTTL, a.cookieSecure)
	return id, st
}

func (a *app) saveState(id string, st session.State) {
	if id != "" {
		a.sessions.Put(id, st)
	}
}

// onRoute validates navigation to a view through the session router and
// redirects when the state machine lands elsewhere.
func (a *app) onRoute(route domain.Route, next func(http.ResponseWriter, *http.Request, string, session.State)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, st := a.currentState(r)
		visited := st.Visit(route, a.adminEmail)
		a.saveState(id, visited)
		if visited.Route != route {
			http.Redirect(w, r, routePath(visited.Route), http.StatusFound)
			return
		}
		next(w, r, id, visited)
	}
}
