package router

import "github.com/misterclayt0n/lazaro-planner/internal/session"

// SessionSource is the part of the session store the router depends on.
type SessionSource interface {
	Current() session.Session
	Subscribe(fn session.Listener) (unsubscribe func())
}

type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Gate decides whether a route may render for the current session. Denied
// protected routes redirect to the login path; the requested path is not kept.
type Gate struct {
	sessions  SessionSource
	loginPath string
}

func NewGate(sessions SessionSource, loginPath string) *Gate {
	return &Gate{sessions: sessions, loginPath: loginPath}
}

func (g *Gate) Evaluate(route *Route) Decision {
	if !route.Protected || g.sessions.Current().IsAuthenticated {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: g.loginPath}
}
