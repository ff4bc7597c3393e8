// Package services contains the resource gateways of the SimCar client:
// listings, favorites, authentication and the member profile. Every gateway
// issues its calls through the HTTP adapter, passes listing payloads through
// the transformer and propagates adapter failures to the caller.
package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/models"
)

// API is the subset of client.HTTPClient used by the gateways.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostMultipart(ctx context.Context, path string, parts []client.Part, out any) error
}

var _ API = (*client.HTTPClient)(nil)

// UserSink mirrors profile changes into the client state store.
type UserSink interface {
	SetUser(user models.UserProfile)
	Logout()
}

type nopSink struct{}

func (nopSink) SetUser(models.UserProfile) {}
func (nopSink) Logout()                    {}

func sinkOrNop(s UserSink) UserSink {
	if s == nil {
		return nopSink{}
	}
	return s
}
