// Package store is the in-memory data of the mock marketplace backend:
// members, listings with their images and per-member favorites.
package store

import (
	"errors"
	"sync"
)

var (
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)

type Store struct {
	mu sync.RWMutex

	nextMemberID int64
	nextCarID    int64
	nextImageID  int64

	members   map[int64]*Member
	cars      map[int64]*Car
	favorites map[int64]map[int64]struct{} // member id -> car ids
	blobs     map[string][]byte            // image path -> bytes
}

func New() *Store {
	return &Store{
		members:   make(map[int64]*Member),
		cars:      make(map[int64]*Car),
		favorites: make(map[int64]map[int64]struct{}),
		blobs:     make(map[string][]byte),
	}
}
