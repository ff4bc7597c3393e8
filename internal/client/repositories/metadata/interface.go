// Package metadata is the key/value table backing the persisted client
// session (token, cached user profile, favorite ids).
package metadata

import (
	"context"
	"time"
)

// Repository stores opaque values by key. Get on a missing key returns
// (nil, nil); Delete on a missing key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the present keys only.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// UpdatedAt is the time of the last Set of key, zero when missing.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
