package persist

import "context"

// DefaultNamespace is the storage entry name holding the session snapshot.
const DefaultNamespace = "auth"

// Snapshot is the durable projection of the in-memory session. Only the
// credential and profile survive a restart; loading flags and error messages
// are transient by design.
type Snapshot struct {
	Credential string         `json:"credential,omitempty"`
	Profile    map[string]any `json:"profile,omitempty"`
}

// IsZero reports whether the snapshot carries no state.
func (s Snapshot) IsZero() bool {
	return s.Credential == "" && s.Profile == nil
}

// Store is the durable storage consumed by the session manager.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the stored snapshot, or ErrNotFound when no snapshot has
	// been saved. An absent snapshot is equivalent to an unauthenticated
	// session.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Clear removes the stored snapshot. Clearing an absent snapshot is not
	// an error.
	Clear(ctx context.Context) error
}
