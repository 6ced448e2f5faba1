package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
)

type stubProfileAPI struct {
	user  *domain.User
	err   error
	calls int
}

func (s *stubProfileAPI) Me(context.Context) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

// failingStore simulates platform storage faults.
type failingStore struct {
	getErr    error
	setErr    error
	deleteErr error
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}
func (f *failingStore) Set(context.Context, string, string) error { return f.setErr }
func (f *failingStore) Delete(context.Context, string) error      { return f.deleteErr }
func (f *failingStore) Close() error                              { return nil }

func testUser() *domain.User {
	return &domain.User{UserID: "user_1", Email: "amelia@example.com", Name: "Amelia"}
}

func TestAuthenticatedTracksTokenPresence(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	store := New(keys, &stubProfileAPI{}, nil)

	steps := []struct {
		name string
		run  func() error
		want bool
	}{
		{"initial", func() error { return nil }, false},
		{"set token", func() error { return store.SetToken(ctx, "tok_1") }, true},
		{"clear token", func() error { return store.SetToken(ctx, "") }, false},
		{"login", func() error { return store.Login(ctx, "tok_2", testUser()) }, true},
		{"logout", func() error { return store.Logout(ctx) }, false},
		{"login again", func() error { return store.Login(ctx, "tok_3", testUser()) }, true},
		{"set token overwrite", func() error { return store.SetToken(ctx, "tok_4") }, true},
	}

	for _, step := range steps {
		require.NoError(t, step.run(), step.name)
		require.Equal(t, step.want, store.Authenticated(), step.name)
		require.Equal(t, step.want, store.Snapshot().Token != "", step.name)
	}
}

func TestLoginPersistsToken(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	store := New(keys, &stubProfileAPI{}, nil)

	require.NoError(t, store.Login(ctx, "tok_abc", testUser()))

	value, ok, err := keys.Get(ctx, keystore.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok_abc", value)

	snap := store.Snapshot()
	require.True(t, snap.Authenticated)
	require.False(t, snap.Loading)
	require.Equal(t, "Amelia", snap.User.Name)
}

func TestLogoutClearsEverywhere(t *testing.T) {
	ctx := context.Background()
	keys := keystore.NewMemory()
	store := New(keys, &stubProfileAPI{}, nil)

	require.NoError(t, store.Login(ctx, "tok_abc", testUser()))
	require.NoError(t, store.Logout(ctx))

	_, ok, err := keys.Get(ctx, keystore.TokenKey)
	require.NoError(t, err)
	require.False(t, ok)

	snap := store.Snapshot()
	require.False(t, snap.Authenticated)
	require.Empty(t, snap.Token)
	require.Nil(t, snap.User)
}

func TestLoginIsOneTransition(t *testing.T) {
	ctx := context.Background()
	store := New(keystore.NewMemory(), &stubProfileAPI{}, nil)

	var observed []Snapshot
	store.Subscribe(func(snap Snapshot) {
		observed = append(observed, snap)
	})

	require.NoError(t, store.Login(ctx, "tok_abc", testUser()))

	require.Len(t, observed, 1)
	require.True(t, observed[0].Authenticated)
	require.NotNil(t, observed[0].User)
	require.False(t, observed[0].Loading)
}

func TestSetTokenPersistFaultLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	store := New(&failingStore{setErr: boom}, &stubProfileAPI{}, nil)

	err := store.SetToken(ctx, "tok_abc")
	require.Error(t, err)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeStorage))
	require.False(t, store.Authenticated())
}

func TestSetUserDoesNotAffectAuthentication(t *testing.T) {
	store := New(keystore.NewMemory(), &stubProfileAPI{}, nil)

	store.SetUser(testUser())
	require.False(t, store.Authenticated())

	store.SetUser(nil)
	require.False(t, store.Authenticated())
}
