package auth

import (
	"strings"
)

// DecisionAction is the outcome of the route authorization predicate
type DecisionAction string

const (
	DecisionAllow    DecisionAction = "allow"
	DecisionDeny     DecisionAction = "deny"
	DecisionRedirect DecisionAction = "redirect"
)

// Decision is what the routing layer acts on: let the request through,
// bounce it to the login page, or force-redirect to a target.
type Decision struct {
	Action     DecisionAction
	RedirectTo string
}

// Authorize decides access for a request given only session presence and
// the requested path. Paths under the dashboard prefix require a session;
// everything else is open, except that an authenticated session hitting a
// non-dashboard path (the login page, say) is bounced to the dashboard
// root.
func Authorize(sessionPresent bool, path string, dashboardPrefix string) Decision {
	if dashboardPrefix == "" {
		dashboardPrefix = "/dashboard"
	}

	onDashboard := strings.HasPrefix(path, dashboardPrefix)

	if onDashboard {
		if sessionPresent {
			return Decision{Action: DecisionAllow}
		}
		return Decision{Action: DecisionDeny}
	}

	if sessionPresent {
		return Decision{Action: DecisionRedirect, RedirectTo: dashboardPrefix}
	}

	return Decision{Action: DecisionAllow}
}
