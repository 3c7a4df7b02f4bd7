package domain

// Route names the view a browser session is currently bound to. The session
// router owns all transitions between them.
type Route string

const (
	RoutePublic         Route = "public"
	RouteLogin          Route = "login"
	RouteForgotPassword Route = "forgot_password"
	RouteForceChange    Route = "force_change"
	RouteDemo           Route = "demo"
	RouteApp            Route = "app"
	RouteAdmin          Route = "admin"
)

// RequiresAuth reports whether a route may only be reached by a logged-in
// session. Demo counts as public: it runs on an ephemeral identity.
func (r Route) RequiresAuth() bool {
	switch r {
	case RoutePublic, RouteLogin, RouteForgotPassword, RouteDemo:
		return false
	default:
		return true
	}
}
