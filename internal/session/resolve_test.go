package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
)

func TestResolveWithValidToken(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_abc"))

	api := &stubProfileAPI{user: testUser()}
	store := New(keys, api, nil)
	require.True(t, store.Snapshot().Loading)

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.True(t, snap.Authenticated)
	require.Equal(t, "user_1", snap.User.UserID)
	require.Equal(t, 1, api.calls)
}

func TestResolveWithRejectedToken(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_abc"))

	api := &stubProfileAPI{err: domain.ErrUnauthorized}
	store := New(keys, api, nil)

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.False(t, snap.Authenticated)
	require.Nil(t, snap.User)

	_, ok, err := keys.Get(ctx, keystore.TokenKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveWithoutTokenSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	api := &stubProfileAPI{user: testUser()}
	store := New(keystore.NewMemory(), api, nil)

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.False(t, snap.Authenticated)
	require.Zero(t, api.calls)
}

func TestResolveStorageFaultFailsClosed(t *testing.T) {
	ctx := context.Background()
	api := &stubProfileAPI{user: testUser()}
	store := New(&failingStore{getErr: errors.New("io fault")}, api, nil)

	store.Resolve(ctx)

	snap := store.Snapshot()
	require.False(t, snap.Loading, "resolution must settle even on storage faults")
	require.False(t, snap.Authenticated)
	require.Zero(t, api.calls)
}

func TestResolveDiscardsExpiredJWTWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	raw, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, raw))

	api := &stubProfileAPI{user: testUser()}
	store := New(keys, api, nil)

	store.Resolve(ctx)

	require.False(t, store.Authenticated())
	require.Zero(t, api.calls)

	_, ok, getErr := keys.Get(ctx, keystore.TokenKey)
	require.NoError(t, getErr)
	require.False(t, ok)
}

func TestResolveKeepsOpaqueTokens(t *testing.T) {
	// Opaque session tokens are not JWTs; the expiry peek must not reject them.
	ctx := context.Background()
	keys := keystore.NewMemory()
	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "session_4f2f9f"))

	api := &stubProfileAPI{user: testUser()}
	store := New(keys, api, nil)

	store.Resolve(ctx)

	require.True(t, store.Authenticated())
	require.Equal(t, 1, api.calls)
}

func TestReloadNoticesOutOfBandTokenDeletion(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	api := &stubProfileAPI{user: testUser()}
	store := New(keys, api, nil)

	require.NoError(t, store.Login(ctx, "tok_abc", testUser()))
	require.True(t, store.Authenticated())

	// Simulate the API client's 401 handling: persisted copy gone, memory not.
	require.NoError(t, keys.Delete(ctx, keystore.TokenKey))
	require.True(t, store.Authenticated())

	require.NoError(t, store.Reload(ctx))
	require.False(t, store.Authenticated())
}

func TestReloadAdoptsNewerPersistedToken(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	api := &stubProfileAPI{user: testUser()}
	store := New(keys, api, nil)

	require.NoError(t, keys.Set(ctx, keystore.TokenKey, "tok_new"))

	require.NoError(t, store.Reload(ctx))
	snap := store.Snapshot()
	require.True(t, snap.Authenticated)
	require.Equal(t, "tok_new", snap.Token)
	require.NotNil(t, snap.User)
}
