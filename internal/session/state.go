// Package session models one browser session: the view it is routed to, the
// cached identity used to filter per-user data, and, for demo sessions, the
// ephemeral activity buffers. State is a value; every transition returns the
// next state instead of mutating ambient globals.
package session

import (
	"github.com/google/uuid"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

// DemoData is the session-scoped scratch space for demo mode. It is never
// persisted and never shared across sessions.
type DemoData struct {
	Activity []domain.ActivityEntry
	Goals    []domain.Goal
}

type State struct {
	Route    domain.Route
	LoggedIn bool
	IsDemo   bool
	Identity domain.Identity

	// MustChange pins the session to the password-change view until the
	// forced change completes. Set at login for accounts an administrator
	// flagged, cleared only by PasswordChanged.
	MustChange bool

	Demo *DemoData
}

// New is the initial state of every browser session, and the reset target
// after logout.
func New() State {
	return State{Route: domain.RoutePublic}
}

func newDemoIdentity() domain.Identity {
	tag := uuid.NewString()[:8]
	return domain.Identity{
		Username: "guest-" + tag,
		Email:    "guest-" + tag + "@demo.invalid",
	}
}
