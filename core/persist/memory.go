package persist

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-process snapshot store. It backs tests and serves as the
// degraded mode when durable storage is unavailable.
type Memory struct {
	mu      sync.RWMutex
	snap    Snapshot
	present bool
}

// NewMemory creates an empty in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.present {
		return Snapshot{}, ErrNotFound
	}
	return copySnapshot(m.snap), nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = copySnapshot(snap)
	m.present = true
	return nil
}

// Clear implements Store.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap = Snapshot{}
	m.present = false
	return nil
}

// copySnapshot clones the profile map so callers cannot mutate stored state.
func copySnapshot(snap Snapshot) Snapshot {
	if snap.Profile == nil {
		return snap
	}
	return Snapshot{
		Credential: snap.Credential,
		Profile:    maps.Clone(snap.Profile),
	}
}
