package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blossomapp/client/api/client"
	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/apitest"
	"github.com/blossomapp/client/internal/guard"
	"github.com/blossomapp/client/internal/keystore"
	"github.com/blossomapp/client/internal/session"
)

// These tests run the startup resolution through the real HTTP client
// against the in-process backend stub, so the persisted-store handoff
// between session and client interceptors is covered end to end.

func startStack(t *testing.T) (*apitest.Server, keystore.Store, *session.Store) {
	t.Helper()

	srv := apitest.Start(t)
	keys := keystore.NewMemory()
	api := client.New(client.Config{
		BaseURL:        srv.URL,
		RequestTimeout: 2 * time.Second,
	}, keys, nil)
	return srv, keys, session.New(keys, api, nil)
}

func TestStartupResolutionAgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv, keys, store := startStack(t)

	user := &domain.User{UserID: "user_1", Email: "amelia@example.com", Name: "Amelia"}
	srv.SeedToken("tok_abc", user)
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_abc"))

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.True(t, snap.Authenticated)
	require.Equal(t, "user_1", snap.User.UserID)
	require.Equal(t, "Bearer tok_abc", srv.LastAuthorization())
}

func TestStartupResolutionWithRevokedToken(t *testing.T) {
	ctx := context.Background()
	srv, keys, store := startStack(t)

	// Persisted locally, unknown to the backend: the profile call answers
	// 401, the interceptor drops the persisted copy and resolution fails
	// closed.
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_revoked"))

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.False(t, snap.Authenticated)
	require.Nil(t, snap.User)

	_, ok, err := keys.Get(ctx, keystore.TokenKey)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, int64(1), srv.Requests())
}

func TestStartupResolutionWithoutToken(t *testing.T) {
	ctx := context.Background()
	srv, _, store := startStack(t)

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.False(t, snap.Authenticated)
	require.Zero(t, srv.Requests(), "no network call may be attempted")
}

func TestGuardFollowsResolution(t *testing.T) {
	ctx := context.Background()
	srv, keys, store := startStack(t)

	user := &domain.User{UserID: "user_1", Name: "Amelia"}
	srv.SeedToken("tok_abc", user)
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_abc"))

	nav := &recordingNavigator{}
	g := guard.New(guard.Routes{}, nav, nil)
	segments := []string{"(auth)", "login"}
	g.Attach(store, func() []string { return segments })

	store.Resolve(ctx)

	// Signed in while sitting in the auth flow: exactly one redirect home.
	require.Equal(t, []string{"/(tabs)"}, nav.replacements)
}

type recordingNavigator struct {
	replacements []string
}

func (n *recordingNavigator) Replace(route string) {
	n.replacements = append(n.replacements, route)
}
