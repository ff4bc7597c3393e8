// Package store is the in-memory client state: the authentication slice and
// the listing-search slice. State changes only through the slice actions and
// every change is pushed to subscribers as a snapshot.
package store

import (
	"slices"

	"github.com/dmitrijs2005/simcar/internal/client/models"
)

// AuthState is Anonymous when User is nil.
type AuthState struct {
	User *models.UserProfile
}

func (a AuthState) IsAuthenticated() bool {
	return a.User != nil
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// CarState is the listing-search slice. Items are kept while Loading but are
// not trusted until the fetch resolves.
type CarState struct {
	Status   Status
	Items    []models.ListingSummary
	Error    string
	Selected *models.ListingDetail
	Filter   models.ListingFilter
}

// State is a snapshot of both slices.
type State struct {
	Auth AuthState
	Cars CarState
}

func (a AuthState) clone() AuthState {
	if a.User != nil {
		u := *a.User
		a.User = &u
	}
	return a
}

func (c CarState) clone() CarState {
	c.Items = slices.Clone(c.Items)
	if c.Selected != nil {
		d := *c.Selected
		d.Images = slices.Clone(d.Images)
		c.Selected = &d
	}
	return c
}
