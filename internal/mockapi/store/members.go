package store

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/simcar/internal/common"
)

type Member struct {
	ID           int64
	Email        string
	Name         string
	Phone        string
	PasswordHash []byte
}

// CreateMember adds a member. Emails are unique, compared case-insensitively.
func (s *Store) CreateMember(ctx context.Context, m Member) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.members {
		if strings.EqualFold(existing.Email, m.Email) {
			return nil, ErrConflict
		}
	}

	s.nextMemberID++
	m.ID = s.nextMemberID
	s.members[m.ID] = &m

	out := m
	return &out, nil
}

func (s *Store) MemberByEmail(ctx context.Context, email string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if strings.EqualFold(m.Email, email) {
			out := *m
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *Store) MemberByID(ctx context.Context, id int64) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *m
	return &out, nil
}

// UpdateMember replaces name and phone and, when passwordHash is not nil,
// the password.
func (s *Store) UpdateMember(ctx context.Context, id int64, name, phone string, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.Name = name
	m.Phone = phone
	if passwordHash != nil {
		m.PasswordHash = passwordHash
	}
	return nil
}

// DeleteMember removes the member together with their listings and favorites.
func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.members, id)
	delete(s.favorites, id)

	for carID, c := range s.cars {
		if c.SellerID == id {
			s.deleteCarLocked(carID)
		}
	}
	return nil
}
