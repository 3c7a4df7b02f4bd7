package adminui

import (
	"errors"
	"net/http"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

func (a *app) handleDashboard(w http.ResponseWriter, r *http.Request) {
	users := a.adminSvc.ListUsers()
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			Email:          u.Email,
			Username:       u.Username,
			Status:         string(u.Status),
			ResetRequested: u.ResetRequested,
			ForceChange:    u.ForceChange,
		})
	}

	a.templates.renderDashboard(w, http.StatusOK, dashboardViewData{
		Title:   "Admin",
		Summary: a.adminSvc.Summary(),
		Users:   rows,
		Notice:  mapNotice(r.URL.Query().Get("notice")),
		Error:   mapError(r.URL.Query().Get("error")),
	})
}

func (a *app) handleApprove(w http.ResponseWriter, r *http.Request) {
	a.runAction(w, r, "approved", a.adminSvc.Approve)
}

func (a *app) handleBlock(w http.ResponseWriter, r *http.Request) {
	a.runAction(w, r, "blocked", a.adminSvc.Block)
}

func (a *app) handleAllowReset(w http.ResponseWriter, r *http.Request) {
	a.runAction(w, r, "reset_allowed", a.adminSvc.AllowReset)
}

func (a *app) handleDelete(w http.ResponseWriter, r *http.Request) {
	a.runAction(w, r, "deleted", a.adminSvc.Delete)
}

// runAction applies one moderation action to the email in the form and
// bounces back to the dashboard with the outcome in the query string.
func (a *app) runAction(w http.ResponseWriter, r *http.Request, notice string, action func(string) error) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Bad Request", "The form could not be read.")
		return
	}
	email := domain.NormalizeEmail(r.FormValue("email"))
	if email == "" {
		http.Redirect(w, r, "/admin/?error=bad_form", http.StatusFound)
		return
	}

	switch err := action(email); {
	case err == nil:
		http.Redirect(w, r, "/admin/?notice="+notice, http.StatusFound)
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, "/admin/?error=not_found", http.StatusFound)
	default:
		a.logger.Error("adminui: action failed", "notice", notice, "email", email, "err", err)
		http.Redirect(w, r, "/admin/?error=failed", http.StatusFound)
	}
}

func mapNotice(code string) string {
	switch code {
	case "approved":
		return "User approved."
	case "blocked":
		return "User blocked."
	case "reset_allowed":
		return "Reset allowed. The user must pick a new password at next login."
	case "deleted":
		return "User deleted."
	default:
		return ""
	}
}

func mapError(code string) string {
	switch code {
	case "bad_form":
		return "The request was missing the user email."
	case "not_found":
		return "No user matches that email."
	case "failed":
		return "The action could not be saved. Try again."
	default:
		return ""
	}
}
