package httpapi

import (
	"net/http"

	"github.com/namankhandelwal900-boop/trackify/internal/auth"
	"github.com/namankhandelwal900-boop/trackify/internal/domain"
	"github.com/namankhandelwal900-boop/trackify/internal/session"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

func (a *api) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json body")
		return
	}

	u, err := a.authSvc.Register(req.Email, req.Username, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, registerResponse{
		Email:    u.Email,
		Username: u.Username,
		Status:   string(u.Status),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Route      string `json:"route"`
	LoggedIn   bool   `json:"logged_in"`
	MustChange bool   `json:"must_change"`
	IsAdmin    bool   `json:"is_admin"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
}

func (a *api) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json body")
		return
	}

	u, mustChange, err := a.authSvc.Login(req.Email, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	id, st := a.currentState(r)
	if id == "" {
		id, st = a.sessions.Create()
		auth.SetSessionCookie(w, a.cookieCodec.Sign(id), a.sessionTTL, a.cookieSecure)
	}
	st = st.LoginSucceeded(domain.Identity{Username: u.Username, Email: u.Email}, mustChange)
	a.sessions.Put(id, st)

	WriteJSON(w, http.StatusOK, a.sessionResponse(st))
}

func (a *api) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if id, ok := a.cookieCodec.ReadSessionID(r); ok {
		a.sessions.Delete(id)
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	WriteJSON(w, http.StatusOK, a.sessionResponse(session.New()))
}

type forgotRequest struct {
	Email string `json:"email"`
}

func (a *api) handleAuthForgot(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json body")
		return
	}

	if err := a.authSvc.RequestPasswordReset(req.Email); err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "submitted"})
}

type passwordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (a *api) handleAuthPassword(w http.ResponseWriter, r *http.Request, id string, st session.State) {
	if !st.MustChange {
		WriteError(w, http.StatusConflict, "no_change_pending", "no password change is pending")
		return
	}

	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json body")
		return
	}

	err := a.authSvc.CompleteForcedChange(st.Identity.Email, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	st = st.PasswordChanged()
	a.sessions.Put(id, st)
	WriteJSON(w, http.StatusOK, a.sessionResponse(st))
}

func (a *api) handleSession(w http.ResponseWriter, r *http.Request) {
	_, st := a.currentState(r)
	WriteJSON(w, http.StatusOK, a.sessionResponse(st))
}

func (a *api) handleAdminSummary(w http.ResponseWriter, r *http.Request, _ string, st session.State) {
	if !st.IsAdmin(a.adminEmail) {
		WriteDomainError(w, domain.ErrForbidden)
		return
	}

	s := a.adminSvc.Summary()
	WriteJSON(w, http.StatusOK, map[string]int{
		"total":           s.Total,
		"approved":        s.Approved,
		"pending":         s.Pending,
		"blocked":         s.Blocked,
		"reset_requested": s.ResetRequested,
	})
}

func (a *api) sessionResponse(st session.State) sessionResponse {
	resp := sessionResponse{
		Route:      string(st.Route),
		LoggedIn:   st.LoggedIn,
		MustChange: st.MustChange,
		IsAdmin:    st.IsAdmin(a.adminEmail),
	}
	if st.LoggedIn || st.IsDemo {
		resp.Username = st.Identity.Username
		resp.Email = st.Identity.Email
	}
	return resp
}
