// Package keystore provides a small asynchronous key-value store for
// credentials with interchangeable backends. Callers never branch on the
// backend: selection happens once in Open and every backend honors the same
// contract, in particular that Get reports a missing key as absent rather
// than as an error.
package keystore

import (
	"context"
	"fmt"

	"github.com/blossomapp/client/internal/config"
)

// TokenKey is the fixed key under which the bearer token is persisted.
const TokenKey = "auth_token"

// Store is the capability interface shared by all backends.
type Store interface {
	// Get returns the stored value, or ok=false when the key is absent.
	// An error is returned only for backend I/O faults.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes the value, overwriting any previous one.
	Set(ctx context.Context, key, value string) error
	// Delete removes the key. Deleting an absent key is a success.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects and initializes a backend from configuration.
func Open(cfg config.KeystoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "bolt":
		return OpenBolt(cfg.Path, cfg.Bucket)
	case "memory":
		return NewMemory(), nil
	case "redis":
		return OpenRedis(cfg)
	default:
		return nil, fmt.Errorf("unknown keystore backend %q", cfg.Backend)
	}
}
