package session

import "github.com/namankhandelwal900-boop/trackify/internal/domain"

// Transitions. Each method validates its own preconditions and returns the
// state unchanged when the event does not apply, so callers can fire events
// straight from user input without pre-checking.

// ChooseDemo enters demo mode from any route. Re-entering keeps the existing
// demo buffers; a logged-in session is cleared first so demo never mixes
// with account data.
func (s State) ChooseDemo() State {
	if s.LoggedIn {
		s = New()
	}
	if s.Demo == nil {
		s.Demo = &DemoData{}
		s.Identity = newDemoIdentity()
	}
	s.Route = domain.RouteDemo
	s.IsDemo = true
	return s
}

// ChooseLogin moves an anonymous session to the login view.
func (s State) ChooseLogin() State {
	if s.LoggedIn {
		return s
	}
	s.Route = domain.RouteLogin
	s.IsDemo = false
	return s
}

// LoginSucceeded records a successful credential check. mustChange routes
// the session to the forced password change instead of the app.
func (s State) LoginSucceeded(id domain.Identity, mustChange bool) State {
	next := New()
	next.LoggedIn = true
	next.Identity = id
	next.MustChange = mustChange
	if mustChange {
		next.Route = domain.RouteForceChange
	} else {
		next.Route = domain.RouteApp
	}
	return next
}

// LoginFailed keeps the session on the login view; the handler renders the
// reason.
func (s State) LoginFailed() State {
	s.Route = domain.RouteLogin
	return s
}

// OpenForgotPassword is reachable from the login view only.
func (s State) OpenForgotPassword() State {
	if s.Route != domain.RouteLogin {
		return s
	}
	s.Route = domain.RouteForgotPassword
	return s
}

// ResetSubmitted returns to login regardless of the request outcome.
func (s State) ResetSubmitted() State {
	if s.Route != domain.RouteForgotPassword {
		return s
	}
	s.Route = domain.RouteLogin
	return s
}

// PasswordChanged is the only exit from the force_change route back to app.
func (s State) PasswordChanged() State {
	if s.Route != domain.RouteForceChange {
		return s
	}
	s.MustChange = false
	s.Route = domain.RouteApp
	return s
}

// Logout fully clears the session, making the machine cyclic: the same
// browser session is reusable across login/logout cycles.
func (s State) Logout() State {
	return New()
}

// Visit validates a navigation to an arbitrary route and returns the state
// actually reached:
//   - routes requiring auth fall back to login for anonymous sessions,
//   - the admin route silently redirects non-admin identities to public,
//   - a pending forced change pins app/admin navigation to force_change,
//   - force_change itself is unreachable without a pending change,
//   - demo navigation is re-entrant (see ChooseDemo).
func (s State) Visit(route domain.Route, adminEmail string) State {
	if route == domain.RouteDemo {
		return s.ChooseDemo()
	}
	if route.RequiresAuth() && !s.LoggedIn {
		s.Route = domain.RouteLogin
		return s
	}
	if route == domain.RouteAdmin && !s.IsAdmin(adminEmail) {
		s.Route = domain.RoutePublic
		return s
	}
	if s.MustChange && (route == domain.RouteApp || route == domain.RouteAdmin) {
		s.Route = domain.RouteForceChange
		return s
	}
	if route == domain.RouteForceChange && !s.MustChange {
		// Only a pending forced change may enter the password view.
		s.Route = domain.RouteApp
		return s
	}
	if s.LoggedIn && (route == domain.RouteLogin || route == domain.RouteForgotPassword) {
		// Already authenticated; nothing to do on the auth screens.
		s.Route = domain.RouteApp
		return s
	}
	s.Route = route
	return s
}

// IsAdmin reports whether the session's identity is the designated
// administrator. A single exact email match, not a role system.
func (s State) IsAdmin(adminEmail string) bool {
	return s.LoggedIn && adminEmail != "" && domain.NormalizeEmail(s.Identity.Email) == domain.NormalizeEmail(adminEmail)
}
