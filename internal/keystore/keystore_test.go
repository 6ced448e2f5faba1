package keystore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/client/internal/config"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	boltStore, err := OpenBolt(filepath.Join(t.TempDir(), "keystore.db"), "credentials")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisStore := NewRedis(goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()}), "test")

	stores := map[string]Store{
		"bolt":   boltStore,
		"memory": NewMemory(),
		"redis":  redisStore,
	}
	for _, s := range stores {
		store := s
		t.Cleanup(func() { _ = store.Close() })
	}
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			// Absent key reads as absent, never as an error.
			value, ok, err := store.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.False(t, ok)
			require.Empty(t, value)

			require.NoError(t, store.Set(ctx, TokenKey, "tok_abc"))

			value, ok, err = store.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "tok_abc", value)

			// Overwrite wins.
			require.NoError(t, store.Set(ctx, TokenKey, "tok_def"))
			value, _, err = store.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.Equal(t, "tok_def", value)

			require.NoError(t, store.Delete(ctx, TokenKey))
			_, ok, err = store.Get(ctx, TokenKey)
			require.NoError(t, err)
			require.False(t, ok)

			// Deleting an absent key is a success.
			require.NoError(t, store.Delete(ctx, TokenKey))
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keystore.db")

	store, err := OpenBolt(path, "credentials")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, TokenKey, "tok_abc"))
	require.NoError(t, store.Close())

	reopened, err := OpenBolt(path, "credentials")
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok_abc", value)
}

func TestRedisNamespacing(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	a := NewRedis(client, "alpha")
	b := NewRedis(goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()}), "beta")

	require.NoError(t, a.Set(ctx, TokenKey, "tok_a"))
	_, ok, err := b.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenSelectsBackend(t *testing.T) {
	store, err := Open(config.KeystoreConfig{Backend: "memory"})
	require.NoError(t, err)
	require.IsType(t, &Memory{}, store)

	store, err = Open(config.KeystoreConfig{
		Backend: "bolt",
		Path:    filepath.Join(t.TempDir(), "keystore.db"),
		Bucket:  "credentials",
	})
	require.NoError(t, err)
	require.IsType(t, &Bolt{}, store)
	require.NoError(t, store.Close())

	_, err = Open(config.KeystoreConfig{Backend: "flatfile"})
	require.Error(t, err)
}
