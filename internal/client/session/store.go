// Package session is the persistent client session: bearer token, cached
// user profile and the cached set of favorite listing ids. Values are kept
// in the local metadata table and every write replaces a whole value.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/simcar/internal/common"
	"github.com/dmitrijs2005/simcar/internal/dbx"
)

// ErrCorrupt is returned when a cached value cannot be decoded.
var ErrCorrupt = errors.New("corrupt session data")

// Session is a snapshot of the persisted state.
type Session struct {
	Token       string
	User        *models.UserProfile
	FavoriteIDs []int64
}

// IsAuthenticated is derived from the token only.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Store is the session contract used by the HTTP adapter, the gateways and
// the state store.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error

	// User returns (nil, nil) when no profile is cached and ErrCorrupt when
	// the cached profile cannot be decoded.
	User(ctx context.Context) (*models.UserProfile, error)
	SetUser(ctx context.Context, user *models.UserProfile) error

	FavoriteIDs(ctx context.Context) ([]int64, error)
	SetFavoriteIDs(ctx context.Context, ids []int64) error
	AddFavorite(ctx context.Context, id int64) error
	RemoveFavorite(ctx context.Context, id int64) error

	// TokenSavedAt is when the current token was stored, zero without one.
	TokenSavedAt(ctx context.Context) (time.Time, error)

	// ClearAuth removes token and user, leaving the favorites cache.
	ClearAuth(ctx context.Context) error
	Clear(ctx context.Context) error

	Load(ctx context.Context) (Session, error)
}

// SQLiteStore implements Store on top of the metadata repository.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository

	// favMu serialises read-modify-write of the favorites value.
	favMu sync.Mutex
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.repo.Delete(ctx, common.TokenKey)
	}
	return s.repo.Set(ctx, common.TokenKey, []byte(token))
}

func (s *SQLiteStore) User(ctx context.Context) (*models.UserProfile, error) {
	v, err := s.repo.Get(ctx, common.UserKey)
	if err != nil {
		return nil, err
	}
	return decodeUser(v)
}

func decodeUser(v []byte) (*models.UserProfile, error) {
	if v == nil {
		return nil, nil
	}
	var u models.UserProfile
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("%w: user: %v", ErrCorrupt, err)
	}
	return &u, nil
}

func (s *SQLiteStore) SetUser(ctx context.Context, user *models.UserProfile) error {
	if user == nil {
		return s.repo.Delete(ctx, common.UserKey)
	}
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.UserKey, b)
}

func (s *SQLiteStore) FavoriteIDs(ctx context.Context) ([]int64, error) {
	v, err := s.repo.Get(ctx, common.FavoriteCarsKey)
	if err != nil {
		return nil, err
	}
	return decodeFavorites(v)
}

func decodeFavorites(v []byte) ([]int64, error) {
	ids := []int64{}
	if v == nil {
		return ids, nil
	}
	if err := json.Unmarshal(v, &ids); err != nil {
		return nil, fmt.Errorf("%w: favorites: %v", ErrCorrupt, err)
	}
	return ids, nil
}

func (s *SQLiteStore) SetFavoriteIDs(ctx context.Context, ids []int64) error {
	s.favMu.Lock()
	defer s.favMu.Unlock()
	return s.writeFavorites(ctx, ids)
}

// AddFavorite inserts id into the cached set; no-op when already present.
// A corrupt cached value is replaced.
func (s *SQLiteStore) AddFavorite(ctx context.Context, id int64) error {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	ids, err := s.FavoriteIDs(ctx)
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return s.writeFavorites(ctx, append(ids, id))
}

// RemoveFavorite deletes id from the cached set; no-op when absent.
func (s *SQLiteStore) RemoveFavorite(ctx context.Context, id int64) error {
	s.favMu.Lock()
	defer s.favMu.Unlock()

	ids, err := s.FavoriteIDs(ctx)
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	if !slices.Contains(ids, id) && err == nil {
		return nil
	}
	return s.writeFavorites(ctx, slices.DeleteFunc(ids, func(v int64) bool { return v == id }))
}

func (s *SQLiteStore) writeFavorites(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.FavoriteCarsKey, b)
}

// ClearAuth removes token and user in one transaction.
func (s *SQLiteStore) ClearAuth(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.TokenKey, common.UserKey)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// TokenSavedAt is when the current token was stored, zero without one.
func (s *SQLiteStore) TokenSavedAt(ctx context.Context) (time.Time, error) {
	return s.repo.UpdatedAt(ctx, common.TokenKey)
}

// Load reads all three values in one query. A corrupt user or favorites
// value is reported as ErrCorrupt together with whatever could be read.
func (s *SQLiteStore) Load(ctx context.Context) (Session, error) {
	vals, err := s.repo.GetMany(ctx, common.TokenKey, common.UserKey, common.FavoriteCarsKey)
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: string(vals[common.TokenKey])}

	var corrupt error
	if sess.User, err = decodeUser(vals[common.UserKey]); err != nil {
		corrupt = err
	}
	if sess.FavoriteIDs, err = decodeFavorites(vals[common.FavoriteCarsKey]); err != nil {
		sess.FavoriteIDs = []int64{}
		corrupt = errors.Join(corrupt, err)
	}

	return sess, corrupt
}
