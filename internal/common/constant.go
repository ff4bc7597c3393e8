// Package common contains shared constants and small helpers used across
// SimCar client components.
package common

// Header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Keys of the persisted client state. The values stored under them are
// whole-value replaced on every write.
const (
	TokenKey        = "token"
	UserKey         = "user"
	FavoriteCarsKey = "favoriteCars"
)
