// Package guard keeps the visible navigation stack consistent with the
// authentication state. It is a pure state machine over two inputs — the
// session snapshot and the current route segments — and makes no decision
// while the session is still resolving, so the first rendered screen never
// flickers through a redirect.
package guard

import (
	"go.uber.org/zap"

	"github.com/blossomapp/client/internal/session"
)

// Navigator is the minimal navigation primitive the guard needs: replace the
// current location without growing history.
type Navigator interface {
	Replace(route string)
}

// Routes configures the guarded route space.
type Routes struct {
	// Landing is where signed-out users are sent.
	Landing string
	// Home is the main tab group's default screen.
	Home string
	// AuthGroup is the top-level segment of the sign-in flow.
	AuthGroup string
	// TabGroup is the top-level segment of the main tabbed UI.
	TabGroup string
	// Allowed lists detail segments reachable while authenticated, beyond
	// the tab group itself.
	Allowed []string
}

// DefaultRoutes matches the application's route layout.
func DefaultRoutes() Routes {
	return Routes{
		Landing:   "/",
		Home:      "/(tabs)",
		AuthGroup: "(auth)",
		TabGroup:  "(tabs)",
		Allowed:   []string{"post", "forum", "group", "resources", "premium"},
	}
}

// Guard evaluates redirect decisions against a Navigator.
type Guard struct {
	routes Routes
	nav    Navigator
	logger *zap.Logger
}

// New builds a guard. Zero-valued route fields fall back to the defaults.
func New(routes Routes, nav Navigator, logger *zap.Logger) *Guard {
	defaults := DefaultRoutes()
	if routes.Landing == "" {
		routes.Landing = defaults.Landing
	}
	if routes.Home == "" {
		routes.Home = defaults.Home
	}
	if routes.AuthGroup == "" {
		routes.AuthGroup = defaults.AuthGroup
	}
	if routes.TabGroup == "" {
		routes.TabGroup = defaults.TabGroup
	}
	if routes.Allowed == nil {
		routes.Allowed = defaults.Allowed
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		routes: routes,
		nav:    nav,
		logger: logger,
	}
}

// Evaluate applies the transition table for the given state and location.
// It runs on every relevant change for the lifetime of the application;
// there is no terminal state.
func (g *Guard) Evaluate(snap session.Snapshot, segments []string) {
	if snap.Loading {
		return
	}

	head := ""
	if len(segments) > 0 {
		head = segments[0]
	}

	if !snap.Authenticated {
		// The landing screen (empty segment) and the auth flow stay
		// visible; everything else bounces to landing.
		if head == "" || head == g.routes.AuthGroup {
			return
		}
		g.logger.Debug("guard: redirecting signed-out user", zap.String("segment", head))
		g.nav.Replace(g.routes.Landing)
		return
	}

	if head == g.routes.TabGroup || g.allowed(head) {
		return
	}
	g.logger.Debug("guard: redirecting signed-in user", zap.String("segment", head))
	g.nav.Replace(g.routes.Home)
}

// Attach subscribes the guard to session transitions, pulling the current
// segments from the router at evaluation time.
func (g *Guard) Attach(store *session.Store, segments func() []string) {
	store.Subscribe(func(snap session.Snapshot) {
		g.Evaluate(snap, segments())
	})
}

func (g *Guard) allowed(segment string) bool {
	for _, s := range g.routes.Allowed {
		if s == segment {
			return true
		}
	}
	return false
}
