package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
)

// FavoriteService is the favorites gateway. The cached id set in the session
// store is only touched after the server has confirmed a change.
type FavoriteService interface {
	Add(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.ListingSummary, error)
	IsFavorite(ctx context.Context, id int64) (bool, error)
}

type favoriteService struct {
	api     API
	session session.Store
	tr      *transform.Transformer
}

func NewFavoriteService(api API, store session.Store, tr *transform.Transformer) FavoriteService {
	return &favoriteService{api: api, session: store, tr: tr}
}

func favoritePath(id int64) string {
	return "/favorites/" + strconv.FormatInt(id, 10)
}

func (s *favoriteService) Add(ctx context.Context, id int64) error {
	if err := s.api.Post(ctx, favoritePath(id), nil, nil); err != nil {
		return fmt.Errorf("add favorite %d: %w", id, err)
	}
	if err := s.session.AddFavorite(ctx, id); err != nil {
		return fmt.Errorf("cache favorite %d: %w", id, err)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, favoritePath(id), nil); err != nil {
		return fmt.Errorf("remove favorite %d: %w", id, err)
	}
	if err := s.session.RemoveFavorite(ctx, id); err != nil {
		return fmt.Errorf("uncache favorite %d: %w", id, err)
	}
	return nil
}

// List fetches the member's favorites and overwrites the cached id set with
// the ids of the returned listings.
func (s *favoriteService) List(ctx context.Context) ([]models.ListingSummary, error) {
	var items []models.ListingSummary
	if err := s.api.Get(ctx, "/members/favorites", nil, &items); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if err := s.session.SetFavoriteIDs(ctx, ids); err != nil {
		return nil, fmt.Errorf("cache favorites: %w", err)
	}

	return s.tr.Summaries(items), nil
}

// IsFavorite answers from the cached set only.
func (s *favoriteService) IsFavorite(ctx context.Context, id int64) (bool, error) {
	ids, err := s.session.FavoriteIDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}
