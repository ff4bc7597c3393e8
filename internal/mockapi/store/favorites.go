package store

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/simcar/internal/common"
)

// AddFavorite is idempotent. The listing must exist.
func (s *Store) AddFavorite(ctx context.Context, memberID, carID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[carID]; !ok {
		return common.ErrorNotFound
	}
	favs, ok := s.favorites[memberID]
	if !ok {
		favs = make(map[int64]struct{})
		s.favorites[memberID] = favs
	}
	favs[carID] = struct{}{}
	return nil
}

// RemoveFavorite is idempotent.
func (s *Store) RemoveFavorite(ctx context.Context, memberID, carID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.favorites[memberID], carID)
	return nil
}

// Favorites returns the member's favorite listings, newest first.
func (s *Store) Favorites(ctx context.Context, memberID int64) []*Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Car, 0, len(s.favorites[memberID]))
	for id := range s.favorites[memberID] {
		if c, ok := s.cars[id]; ok {
			out = append(out, c.clone())
		}
	}
	slices.SortFunc(out, func(a, b *Car) int { return int(b.ID - a.ID) })
	return out
}
