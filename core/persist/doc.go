// Package persist defines durable storage for the session snapshot.
//
// Only the credential and profile are ever persisted; loading flags and error
// messages are transient session state. An absent snapshot is equivalent to
// an unauthenticated session, so stores report absence with ErrNotFound
// rather than a zero value.
//
// Two implementations ship with the package: File, a JSON file on disk
// (the desktop analogue of browser local storage), and Memory, used by tests
// and as the degraded mode when durable storage is unavailable. A
// Redis-backed store lives in integration/database/redis for processes that
// share session state with a fleet.
//
//	store, err := persist.NewFile(persist.FileConfig{
//		Path: filepath.Join(configDir, "myapp", "state.json"),
//	})
//
// Storage failures are deliberately non-fatal for the session manager: it
// logs and continues with in-memory state only.
package persist
