// Package session holds the process-wide authentication state: the current
// user, the bearer token, and the one-time loading flag. Authenticated is
// never stored; it is derived from token presence, and SetToken is the single
// choke point through which it can change. Every token transition keeps the
// persisted copy in the keystore consistent with memory: the persisted write
// is awaited before the in-memory flag flips, and a clear deletes the
// persisted copy in the same operation.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
)

// ProfileAPI is the slice of the API client resolution depends on.
type ProfileAPI interface {
	Me(ctx context.Context) (*domain.User, error)
}

// Snapshot is a consistent copy of the session state handed to observers.
type Snapshot struct {
	User          *domain.User
	Token         string
	Loading       bool
	Authenticated bool
}

// Store is the session singleton. All mutators are safe for concurrent use;
// each transition is atomic from an observer's perspective.
type Store struct {
	mu      sync.Mutex
	user    *domain.User
	token   string
	loading bool

	keys   keystore.Store
	api    ProfileAPI
	logger *zap.Logger

	subMu sync.Mutex
	subs  []func(Snapshot)
}

// New creates a store in the pre-resolution state: no user, no token,
// loading until Resolve settles.
func New(keys keystore.Store, api ProfileAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		loading: true,
		keys:    keys,
		api:     api,
		logger:  logger,
	}
}

// Subscribe registers an observer notified after every settled transition.
func (s *Store) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// SetUser replaces the profile record. It never touches the token.
func (s *Store) SetUser(user *domain.User) {
	s.mu.Lock()
	s.user = user
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SetLoading overrides the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SetToken persists then installs a token, or deletes then clears it when
// the token is empty. A persistence fault propagates and leaves the
// in-memory state untouched, so memory never claims authentication the
// keystore cannot back.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		if err := s.keys.Delete(ctx, keystore.TokenKey); err != nil {
			return domain.WrapError(domain.ErrCodeStorage, "delete persisted token", err)
		}
		s.mu.Lock()
		s.token = ""
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return nil
	}

	if err := s.keys.Set(ctx, keystore.TokenKey, token); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "persist token", err)
	}
	s.mu.Lock()
	s.token = token
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// Login installs token and user as one transition, ending the loading phase.
// Observers never see an authenticated-but-userless intermediate state on
// this path.
func (s *Store) Login(ctx context.Context, token string, user *domain.User) error {
	if err := s.keys.Set(ctx, keystore.TokenKey, token); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "persist token", err)
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// Logout deletes the persisted token and clears token and user together.
// The loading flag is untouched. Any best-effort remote logout happens at
// the caller before this.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.keys.Delete(ctx, keystore.TokenKey); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "delete persisted token", err)
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return nil
}

// snapshotLocked must be called with mu held.
func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		User:          s.user,
		Token:         s.token,
		Loading:       s.loading,
		Authenticated: s.token != "",
	}
}

// clearTokenLocal drops the in-memory token without touching the keystore.
// Used when the persisted copy is already known to be gone.
func (s *Store) clearTokenLocal() {
	s.mu.Lock()
	s.token = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// installTokenLocal mirrors an already-persisted token into memory.
func (s *Store) installTokenLocal(token string) {
	s.mu.Lock()
	s.token = token
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) currentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
