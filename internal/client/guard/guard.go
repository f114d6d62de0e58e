// Package guard decides whether a navigation target is reachable for the
// current authentication state.
package guard

import "strings"

// Well-known paths used as redirect targets.
const (
	LoginPath = "/login"
	HomePath  = "/documents"
)

// Decision is the outcome of a guard check. When Allow is false, RedirectTo
// names the path to route to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard holds the route policy: prefixes that require authentication and
// auth-only paths that bounce authenticated users back to the app. Both are
// fixed configuration, never user data.
type Guard struct {
	protected []string
	authOnly  []string
}

// New returns a Guard with the application's route policy.
func New() *Guard {
	return &Guard{
		protected: []string{"/documents", "/audits", "/profile", "/settings"},
		authOnly:  []string{LoginPath, "/register"},
	}
}

// Check runs the rule table for a navigation to path:
//
//	protected prefix + anonymous     -> redirect to login
//	auth-only path + authenticated   -> redirect to documents home
//	otherwise                        -> allow
func (g *Guard) Check(path string, authenticated bool) Decision {
	if !authenticated && g.requiresAuth(path) {
		return Decision{RedirectTo: LoginPath}
	}
	if authenticated && g.isAuthOnly(path) {
		return Decision{RedirectTo: HomePath}
	}
	return Decision{Allow: true}
}

func (g *Guard) requiresAuth(path string) bool {
	for _, prefix := range g.protected {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Guard) isAuthOnly(path string) bool {
	for _, p := range g.authOnly {
		if path == p {
			return true
		}
	}
	return false
}
