package session

import (
	"context"
	"encoding/json"

	"github.com/dollro/authclient/core/client"
)

// Profile holds the server-supplied user attributes. The shape is owned by
// the identity service; only the username is given an accessor because it is
// the one field the session layer itself displays.
type Profile map[string]any

// Username returns the profile's username, or the empty string when the
// profile is absent or carries no username.
func (p Profile) Username() string {
	if p == nil {
		return ""
	}
	if name, ok := p["username"].(string); ok {
		return name
	}
	return ""
}

// API is the transport contract consumed by the session manager. It is
// satisfied by *client.Client; tests substitute a mock.
type API interface {
	Login(ctx context.Context, credentials map[string]string) (client.Token, error)
	Register(ctx context.Context, userData map[string]string) (json.RawMessage, error)
	User(ctx context.Context) (map[string]any, error)
	Logout(ctx context.Context) error

	// SetAuthHeader and ClearAuthHeader mutate the transport's default
	// authorization header. The manager is the single writer of this
	// process-global state.
	SetAuthHeader(token string)
	ClearAuthHeader()
}
