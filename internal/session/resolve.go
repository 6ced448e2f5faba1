package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/blossomapp/client/domain"
	"github.com/blossomapp/client/internal/keystore"
)

// Resolve runs the one-time startup resolution: read the persisted token,
// and if present confirm it against the profile endpoint. It fails closed —
// any fault lands in the unauthenticated, non-loading state and nothing is
// surfaced to the caller. The loading flag is guaranteed to end false.
func (s *Store) Resolve(ctx context.Context) {
	defer s.SetLoading(false)

	token, ok, err := s.keys.Get(ctx, keystore.TokenKey)
	if err != nil {
		s.logger.Warn("session resolution: keystore read failed, treating as signed out", zap.Error(err))
		return
	}
	if !ok || token == "" {
		return
	}

	// A JWT already expired on its face is dropped without spending a
	// network round-trip. Opaque session tokens skip this check.
	if tokenExpired(token, time.Now()) {
		s.logger.Info("session resolution: persisted token expired, discarding")
		s.discardPersisted(ctx)
		return
	}

	if err := s.SetToken(ctx, token); err != nil {
		s.logger.Warn("session resolution: failed to install token", zap.Error(err))
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("session resolution: profile fetch failed, discarding token",
			zap.String("code", string(domain.CodeOf(err))), zap.Error(err))
		s.discardPersisted(ctx)
		s.clearTokenLocal()
		return
	}

	s.SetUser(user)
}

// Reload re-runs resolution on demand without touching the loading flag.
// It notices a persisted token deleted out-of-band (for example by the API
// client's 401 handling) and brings the in-memory state back in line.
func (s *Store) Reload(ctx context.Context) error {
	token, ok, err := s.keys.Get(ctx, keystore.TokenKey)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "read persisted token", err)
	}
	if !ok || token == "" {
		if s.currentToken() != "" {
			s.logger.Info("session reload: persisted token gone, signing out")
			s.clearTokenLocal()
		}
		return nil
	}

	if token != s.currentToken() {
		s.installTokenLocal(token)
	}
	if s.currentUser() != nil {
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.discardPersisted(ctx)
		s.clearTokenLocal()
		return err
	}
	s.SetUser(user)
	return nil
}

func (s *Store) discardPersisted(ctx context.Context) {
	if err := s.keys.Delete(ctx, keystore.TokenKey); err != nil {
		s.logger.Warn("failed to delete persisted token", zap.Error(err))
	}
}

// tokenExpired inspects a JWT's exp claim without verifying the signature.
// Tokens that do not parse as JWTs (opaque session tokens) are never treated
// as expired here; the backend is the authority for those.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Unix(int64(exp), 0).Before(now)
}
