package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/services"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/logging"
)

// Store aggregates the slices and fans state changes out to subscribers.
// It satisfies services.UserSink.
type Store struct {
	auth *AuthSlice
	cars *CarSlice

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(State)
}

var _ services.UserSink = (*Store)(nil)

// New reads the initial authentication state from sess. The store keeps no
// reference to sess afterwards.
func New(ctx context.Context, sess session.Store, cars services.CarService, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	auth, err := initAuth(ctx, sess, logger)
	if err != nil {
		return nil, err
	}

	s := &Store{listeners: make(map[int]func(State))}
	s.auth = &AuthSlice{state: auth, notify: s.publish}
	s.cars = &CarSlice{
		state:  CarState{Items: []models.ListingSummary{}},
		cars:   cars,
		notify: s.publish,
	}
	return s, nil
}

func (s *Store) Auth() *AuthSlice { return s.auth }
func (s *Store) Cars() *CarSlice  { return s.cars }

func (s *Store) State() State {
	return State{Auth: s.auth.State(), Cars: s.cars.State()}
}

func (s *Store) SetUser(user models.UserProfile) { s.auth.SetUser(user) }
func (s *Store) Logout()                         { s.auth.Logout() }

// Subscribe registers fn to receive a snapshot after every change and
// returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) publish() {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if len(fns) == 0 {
		return
	}
	st := s.State()
	for _, fn := range fns {
		fn(st)
	}
}
