// Package httpapi is the JSON collaborator surface. It exposes the same
// account lifecycle as the web views, driven by the same session state, so a
// client can script registration, login, and session inspection.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/service"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	Auth  *service.AuthService
	Admin *service.AdminService

	Sessions     *session.Registry
	CookieCodec  auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration
	AdminEmail   string
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:       logger,
		isProd:       opts.IsProd,
		authSvc:      opts.Auth,
		adminSvc:     opts.Admin,
		sessions:     opts.Sessions,
		cookieCodec:  opts.CookieCodec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		adminEmail:   opts.AdminEmail,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", api.handleHealthz)
	mux.HandleFunc("POST /v1/auth/register", api.handleAuthRegister)
	mux.HandleFunc("POST /v1/auth/login", api.handleAuthLogin)
	mux.HandleFunc("POST /v1/auth/logout", api.handleAuthLogout)
	mux.HandleFunc("POST /v1/auth/forgot", api.handleAuthForgot)
	mux.HandleFunc("POST /v1/auth/password", api.requireSession(api.handleAuthPassword))
	mux.HandleFunc("GET /v1/session", api.handleSession)
	mux.HandleFunc("GET /v1/admin/summary", api.requireSession(api.handleAdminSummary))
	mux.HandleFunc("/v1/", handleV1NotFound)

	var h http.Handler = mux
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	authSvc  *service.AuthService
	adminSvc *service.AdminService

	sessions     *session.Registry
	cookieCodec  auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	adminEmail   string
}

func (a *api) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// currentState resolves the request's session, or a fresh anonymous state.
func (a *api) currentState(r *http.Request) (string, session.State) {
	if id, ok := a.cookieCodec.ReadSessionID(r); ok {
		if st, ok := a.sessions.Get(id); ok {
			return id, st
		}
	}
	return "", session.New()
}

func (a *api) requireSession(next func(http.ResponseWriter, *http.Request, string, session.State)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, st := a.currentState(r)
		if id == "" || !st.LoggedIn {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		next(w, r, id, st)
	}
}
