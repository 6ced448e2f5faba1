package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
	"github.com/blossomapp/client/internal/session"
)

type recordingNavigator struct {
	replacements []string
}

func (n *recordingNavigator) Replace(route string) {
	n.replacements = append(n.replacements, route)
}

func snap(loading, authenticated bool) session.Snapshot {
	s := session.Snapshot{Loading: loading, Authenticated: authenticated}
	if authenticated {
		s.Token = "tok_abc"
	}
	return s
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		snap     session.Snapshot
		segments []string
		want     []string
	}{
		{
			name:     "resolving makes no decision",
			snap:     snap(true, false),
			segments: []string{"(tabs)"},
			want:     nil,
		},
		{
			name:     "signed out in tabs bounces to landing",
			snap:     snap(false, false),
			segments: []string{"(tabs)"},
			want:     []string{"/"},
		},
		{
			name:     "signed out on landing stays",
			snap:     snap(false, false),
			segments: nil,
			want:     nil,
		},
		{
			name:     "signed out in auth flow stays",
			snap:     snap(false, false),
			segments: []string{"(auth)", "login"},
			want:     nil,
		},
		{
			name:     "signed out on detail route bounces",
			snap:     snap(false, false),
			segments: []string{"post", "post_123"},
			want:     []string{"/"},
		},
		{
			name:     "signed in inside auth flow goes home",
			snap:     snap(false, true),
			segments: []string{"(auth)"},
			want:     []string{"/(tabs)"},
		},
		{
			name:     "signed in on premium stays",
			snap:     snap(false, true),
			segments: []string{"premium"},
			want:     nil,
		},
		{
			name:     "signed in in tabs stays",
			snap:     snap(false, true),
			segments: []string{"(tabs)", "forums"},
			want:     nil,
		},
		{
			name:     "signed in on post detail stays",
			snap:     snap(false, true),
			segments: []string{"post", "post_123"},
			want:     nil,
		},
		{
			name:     "signed in on landing goes home",
			snap:     snap(false, true),
			segments: nil,
			want:     []string{"/(tabs)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := &recordingNavigator{}
			g := New(Routes{}, nav, nil)
			g.Evaluate(tt.snap, tt.segments)
			require.Equal(t, tt.want, nav.replacements)
		})
	}
}

func TestEvaluateFiresExactlyOnce(t *testing.T) {
	nav := &recordingNavigator{}
	g := New(Routes{}, nav, nil)

	g.Evaluate(snap(false, false), []string{"(tabs)"})
	require.Len(t, nav.replacements, 1)

	g.Evaluate(snap(false, true), []string{"(auth)"})
	require.Len(t, nav.replacements, 2)
	require.Equal(t, []string{"/", "/(tabs)"}, nav.replacements)
}

func TestAttachReactsToSessionTransitions(t *testing.T) {
	ctx := context.Background()
	nav := &recordingNavigator{}
	store := session.New(keystore.NewMemory(), nil, nil)
	g := New(Routes{}, nav, nil)

	current := []string{"(tabs)"}
	g.Attach(store, func() []string { return current })

	// Still resolving: the transition is observed but no redirect fires.
	store.SetUser(&domain.User{UserID: "user_1"})
	require.Empty(t, nav.replacements)

	// Resolution finished signed out while deep in the app.
	store.SetLoading(false)
	require.Equal(t, []string{"/"}, nav.replacements)

	// Signing in from the auth flow lands on home.
	current = []string{"(auth)"}
	require.NoError(t, store.Login(ctx, "tok_abc", &domain.User{UserID: "user_1"}))
	require.Equal(t, []string{"/", "/(tabs)"}, nav.replacements)
}
