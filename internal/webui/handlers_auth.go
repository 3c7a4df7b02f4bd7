package webui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

func (a *app) handlePublic(w http.ResponseWriter, r *http.Request, _ string, _ session.State) {
	a.templates.renderPublic(w, http.StatusOK, viewData{Title: "Trackify"})
}

func (a *app) handleLoginGet(w http.ResponseWriter, r *http.Request, _ string, _ session.State) {
	notice := mapLoginNotice(strings.TrimSpace(r.URL.Query().Get("notice")))
	a.templates.renderLogin(w, http.StatusOK, loginViewData{Title: "Sign In", Notice: notice})
}

func (a *app) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderLogin(w, http.StatusBadRequest, loginViewData{Title: "Sign In", Error: "Invalid form"})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		a.templates.renderLogin(w, http.StatusBadRequest, loginViewData{Title: "Sign In", Email: email, Error: "Email and password are required"})
		return
	}

	u, mustChange, err := a.authSvc.Login(email, password)
	if err != nil {
		// The session stays on the login view; the page carries the reason.
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			a.templates.renderLogin(w, http.StatusUnauthorized, loginViewData{Title: "Sign In", Email: email, Error: "Invalid email or password"})
		case errors.Is(err, domain.ErrUserBlocked):
			a.templates.renderLogin(w, http.StatusForbidden, loginViewData{Title: "Sign In", Email: email, Error: "This account has been blocked"})
		case errors.Is(err, domain.ErrPendingApproval):
			a.templates.renderLogin(w, http.StatusForbidden, loginViewData{Title: "Sign In", Email: email, Error: "Your account is awaiting approval"})
		default:
			a.logger.Error("webui: login failed", "err", err)
			a.templates.renderLogin(w, http.StatusInternalServerError, loginViewData{Title: "Sign In", Email: email, Error: "Login failed"})
		}
		return
	}

	id, st := a.ensureSession(w, r)
	st = st.LoginSucceeded(domain.Identity{Username: u.Username, Email: u.Email}, mustChange)
	a.saveState(id, st)
	http.Redirect(w, r, routePath(st.Route), http.StatusFound)
}

func (a *app) handleRegisterGet(w http.ResponseWriter, r *http.Request, _ string, _ session.State) {
	a.templates.renderRegister(w, http.StatusOK, registerViewData{Title: "Request Access"})
}

func (a *app) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{Title: "Request Access", Error: "Invalid form"})
		return
	}

	email := domain.NormalizeEmail(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if !validEmail(email) {
		a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{
			Title: "Request Access", Email: email, Username: username,
			Error: "Email must be valid.",
		})
		return
	}

	u, err := a.authSvc.Register(email, username, password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{
				Title: "Request Access", Email: email, Username: username,
				Error: "That email is already registered.",
			})
		case errors.Is(err, domain.ErrValidation):
			a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{
				Title: "Request Access", Email: email, Username: username,
				Error: "Email, username, and password are all required.",
			})
		default:
			a.logger.Error("webui: register failed", "err", err)
			a.templates.renderRegister(w, http.StatusInternalServerError, registerViewData{
				Title: "Request Access", Email: email, Username: username,
				Error: "Registration failed.",
			})
		}
		return
	}

	if u.Approved() {
		http.Redirect(w, r, "/login?notice=registered", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login?notice=pending", http.StatusFound)
}

func (a *app) handleForgotGet(w http.ResponseWriter, r *http.Request, _ string, _ session.State) {
	a.templates.renderForgot(w, http.StatusOK, forgotViewData{Title: "Forgot Password"})
}

func (a *app) handleForgotPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderForgot(w, http.StatusBadRequest, forgotViewData{Title: "Forgot Password", Error: "Invalid form"})
		return
	}

	email := domain.NormalizeEmail(r.FormValue("email"))
	if email == "" {
		a.templates.renderForgot(w, http.StatusBadRequest, forgotViewData{Title: "Forgot Password", Error: "Email is required"})
		return
	}

	err := a.authSvc.RequestPasswordReset(email)
	switch {
	case err == nil:
		http.Redirect(w, r, "/login?notice=reset_submitted", http.StatusFound)
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, "/login?notice=reset_unknown", http.StatusFound)
	default:
		a.logger.Error("webui: reset request failed", "err", err)
		http.Redirect(w, r, "/login?notice=reset_failed", http.StatusFound)
	}
}

func (a *app) handleForceChangeGet(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	a.templates.renderPassword(w, http.StatusOK, passwordViewData{Title: "Set a New Password", Identity: st.Identity})
}

func (a *app) handleForceChangePost(w http.ResponseWriter, r *http.Request) {
	id, st := a.currentState(r)
	if !st.LoggedIn {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if !st.MustChange {
		// No pending forced change; the view is not a self-service
		// password form.
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		a.templates.renderPassword(w, http.StatusBadRequest, passwordViewData{Title: "Set a New Password", Identity: st.Identity, Error: "Invalid form"})
		return
	}

	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	err := a.authSvc.CompleteForcedChange(st.Identity.Email, newPassword, confirm)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrValidation):
			msg = "Both password fields are required."
		case errors.Is(err, domain.ErrPasswordMismatch):
			msg = "Passwords do not match."
		case errors.Is(err, domain.ErrNotFound):
			msg = "Account no longer exists."
		default:
			a.logger.Error("webui: forced change failed", "err", err)
			msg = "Password change failed."
		}
		a.templates.renderPassword(w, http.StatusBadRequest, passwordViewData{Title: "Set a New Password", Identity: st.Identity, Error: msg})
		return
	}

	st = st.PasswordChanged()
	a.saveState(id, st)
	http.Redirect(w, r, "/app/", http.StatusFound)
}

func (a *app) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	if id, ok := a.cookieCodec.ReadSessionID(r); ok {
		a.sessions.Delete(id)
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	http.Redirect(w, r, "/", http.StatusFound)
}

func mapLoginNotice(code string) string {
	switch code {
	case "registered":
		return "Account created. You can sign in now."
	case "pending":
		return "Request received. An administrator will approve your account."
	case "reset_submitted":
		return "Reset request submitted. An administrator will review it."
	case "reset_unknown":
		return "No account matches that email."
	case "reset_failed":
		return "Could not submit the reset request. Try again later."
	default:
		return ""
	}
}
