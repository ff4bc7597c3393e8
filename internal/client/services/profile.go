package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/session"
)

// ProfileService is the member profile gateway.
type ProfileService interface {
	// Get fetches the profile and refreshes the cached copy.
	Get(ctx context.Context) (*models.UserProfile, error)
	// Update sends name, phone and optionally a new password, then re-fetches.
	Update(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
	// Delete withdraws the account and clears the whole session.
	Delete(ctx context.Context) error
}

type profileService struct {
	api     API
	session session.Store
	sink    UserSink
}

func NewProfileService(api API, store session.Store, sink UserSink) ProfileService {
	return &profileService{api: api, session: store, sink: sinkOrNop(sink)}
}

func (p *profileService) Get(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := p.api.Get(ctx, "/members/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := p.session.SetUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	p.sink.SetUser(user)
	return &user, nil
}

func (p *profileService) Update(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	if err := p.api.Put(ctx, "/members/profile", upd, nil); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p.Get(ctx)
}

func (p *profileService) Delete(ctx context.Context) error {
	if err := p.api.Delete(ctx, "/members/profile", nil); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := p.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	p.sink.Logout()
	return nil
}
