package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync"

	"github.com/dollro/authclient/core/persist"
	"github.com/dollro/authclient/pkg/logger"
)

// Manager is the sole mutator of session state. It holds the current
// credential, profile, loading flag and last error message, and drives every
// authentication operation against the transport.
//
// The mutex guards state mutation sections only; it is never held across a
// network call. Overlapping operations therefore interleave and the last one
// to complete determines the final loading flag and error message, matching
// the behavior of the UI client this manager was modeled on.
type Manager struct {
	api   API
	store persist.Store
	log   *slog.Logger

	mu         sync.Mutex
	credential string
	profile    Profile
	loading    bool
	lastErr    string
}

// Option configures a Manager.
type Option func(*Manager)

// WithPersistence mirrors the credential and profile to the given store after
// every mutation. Without it the session lives in memory only.
func WithPersistence(store persist.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithLogger sets the logger for swallowed failures (logout transport errors,
// persistence errors). Defaults to a discard handler.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a session manager on top of the given transport.
func New(api API, opts ...Option) (*Manager, error) {
	if api == nil {
		return nil, ErrMissingAPI
	}

	m := &Manager{
		api: api,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Login exchanges credentials for a bearer token, arms the transport's
// authorization header and chains a profile fetch. The raw login response is
// returned to the caller. On failure the normalized message is recorded in
// LastError and the original error is returned; the credential is left unset
// when the token exchange itself fails.
func (m *Manager) Login(ctx context.Context, credentials map[string]string) (json.RawMessage, error) {
	m.begin()
	defer m.finish()

	token, err := m.api.Login(ctx, credentials)
	if err != nil {
		m.setError(loginMessage(err))
		return nil, err
	}

	m.mu.Lock()
	m.credential = token.Key
	m.api.SetAuthHeader(token.Key)
	m.saveSnapshot(ctx)
	m.mu.Unlock()

	if err := m.FetchProfile(ctx); err != nil {
		// A 401 here has already forced a logout inside FetchProfile;
		// the recorded message still follows login normalization.
		m.setError(loginMessage(err))
		return nil, err
	}

	return token.Body, nil
}

// Register submits a new account to the registration endpoint. Neither the
// credential nor the profile is touched. On failure the normalized message
// (detail, non-field error, or all validation messages joined with ", ") is
// recorded and the original error returned.
func (m *Manager) Register(ctx context.Context, userData map[string]string) (json.RawMessage, error) {
	m.begin()
	defer m.finish()

	raw, err := m.api.Register(ctx, userData)
	if err != nil {
		m.setError(registerMessage(err))
		return nil, err
	}
	return raw, nil
}

// FetchProfile loads the user profile for the current credential. Without a
// credential it returns immediately. An authorization failure forces a full
// logout before the error is returned; other failures leave the credential
// in place.
func (m *Manager) FetchProfile(ctx context.Context) error {
	m.mu.Lock()
	if m.credential == "" {
		m.mu.Unlock()
		return nil
	}
	m.loading = true
	m.lastErr = ""
	m.mu.Unlock()

	defer m.finish()

	profile, err := m.api.User(ctx)
	if err != nil {
		m.setError(profileMessage(err))
		if isUnauthorized(err) {
			m.Logout(ctx)
		}
		return err
	}

	m.mu.Lock()
	m.profile = Profile(profile)
	m.saveSnapshot(ctx)
	m.mu.Unlock()

	return nil
}

// Logout clears the session unconditionally. The remote logout call is
// attempted first, but its failure is only logged: local state must reset
// whether or not the server is reachable. Calling Logout on an anonymous
// session is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.begin()

	if err := m.api.Logout(ctx); err != nil {
		m.log.WarnContext(ctx, "logout request failed, clearing local session anyway",
			logger.Component("session"),
			logger.Error(err),
		)
	}

	m.mu.Lock()
	m.credential = ""
	m.profile = nil
	m.api.ClearAuthHeader()
	m.clearSnapshot(ctx)
	m.loading = false
	m.mu.Unlock()
}

// ClearError resets the last error message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
}

// Restore hydrates the session from the persistence store. When a credential
// is found, the transport's authorization header is armed before Restore
// returns, so any component wired up afterwards sees an authorized transport.
// Storage failures are logged and leave the session anonymous; they never
// block startup.
func (m *Manager) Restore(ctx context.Context) {
	if m.store == nil {
		return
	}

	snap, err := m.store.Load(ctx)
	if errors.Is(err, persist.ErrNotFound) {
		return
	}
	if err != nil {
		m.log.WarnContext(ctx, "failed to restore session snapshot",
			logger.Component("session"),
			logger.Error(err),
		)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = snap.Credential
	m.profile = Profile(snap.Profile)
	if m.credential != "" {
		m.api.SetAuthHeader(m.credential)
	}
}

// Initialize verifies a restored credential once at process start. The
// authorization header is re-armed, then the profile is fetched; if that
// fails for any reason the credential is considered stale and a full logout
// runs so the process never keeps an unverifiable credential active. Without
// a credential Initialize is a no-op.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	credential := m.credential
	if credential != "" {
		m.api.SetAuthHeader(credential)
	}
	m.mu.Unlock()

	if credential == "" {
		return
	}

	if err := m.FetchProfile(ctx); err != nil {
		m.log.WarnContext(ctx, "stored credential failed verification, logging out",
			logger.Component("session"),
			logger.Error(err),
		)
		m.Logout(ctx)
	}
}

// IsAuthenticated reports whether a credential is set. It is derived on every
// read; there is no separately stored flag to drift.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential != ""
}

// Credential returns the current bearer token, or the empty string.
func (m *Manager) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Profile returns a copy of the current profile, or nil before any fetch.
func (m *Manager) Profile() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil
	}
	return maps.Clone(m.profile)
}

// Username returns the profile's username, or the empty string.
func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile.Username()
}

// IsLoading reports whether an operation's network call is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LastError returns the most recent normalized failure message, or the empty
// string.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// begin marks an operation start: loading on, previous error cleared.
func (m *Manager) begin() {
	m.mu.Lock()
	m.loading = true
	m.lastErr = ""
	m.mu.Unlock()
}

// finish marks an operation end.
func (m *Manager) finish() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

// saveSnapshot mirrors the persisted subset to the store. Must be called with
// m.mu held. Failures degrade to in-memory state and are only logged.
func (m *Manager) saveSnapshot(ctx context.Context) {
	if m.store == nil {
		return
	}
	snap := persist.Snapshot{
		Credential: m.credential,
		Profile:    m.profile,
	}
	if err := m.store.Save(ctx, snap); err != nil {
		m.log.WarnContext(ctx, "failed to persist session snapshot",
			logger.Component("session"),
			logger.Error(err),
		)
	}
}

// clearSnapshot removes the persisted entry. Must be called with m.mu held.
func (m *Manager) clearSnapshot(ctx context.Context) {
	if m.store == nil {
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.log.WarnContext(ctx, "failed to clear session snapshot",
			logger.Component("session"),
			logger.Error(err),
		)
	}
}
