package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

type AuthSlice struct {
	mu     sync.RWMutex
	state  AuthState
	notify func()
}

// initAuth computes the initial authentication state once. It is
// Authenticated only when a token and a decodable cached user are both
// present. A corrupt cached user is purged together with the token.
func initAuth(ctx context.Context, sess session.Store, logger logging.Logger) (AuthState, error) {
	token, err := sess.Token(ctx)
	if err != nil {
		return AuthState{}, fmt.Errorf("read token: %w", err)
	}

	user, err := sess.User(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrCorrupt) {
			return AuthState{}, fmt.Errorf("read user: %w", err)
		}
		logger.Warn(ctx, "purging corrupt cached session", "error", err)
		if err := sess.ClearAuth(ctx); err != nil {
			return AuthState{}, fmt.Errorf("purge session: %w", err)
		}
		return AuthState{}, nil
	}

	if token == "" || user == nil {
		return AuthState{}, nil
	}
	return AuthState{User: user}, nil
}

func (s *AuthSlice) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SetUser moves the slice to Authenticated(user).
func (s *AuthSlice) SetUser(user models.UserProfile) {
	s.mu.Lock()
	s.state = AuthState{User: &user}
	s.mu.Unlock()
	s.notify()
}

// Logout resets the slice to Anonymous. Clearing the persisted session is
// done by the caller (auth gateway or the 401 handler) before dispatching.
func (s *AuthSlice) Logout() {
	s.mu.Lock()
	s.state = AuthState{}
	s.mu.Unlock()
	s.notify()
}
