// Package session manages the client-side authentication session against a
// token-auth identity service.
//
// The Manager owns the process-wide session state: the opaque bearer
// credential, the fetched user profile, a loading flag and the last
// normalized error message. Every mutation goes through one of its
// operations (Login, Register, FetchProfile, Logout, Restore, Initialize),
// and derived state such as IsAuthenticated and Username is computed on read
// rather than stored, so it can never drift from the credential.
//
// # Startup
//
// A process restores and verifies persisted state before anything else reads
// the session:
//
//	api, err := client.New(client.Config{BaseURL: baseURL})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := persist.NewFile(persist.FileConfig{Path: statePath})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mgr, err := session.New(api,
//		session.WithPersistence(store),
//		session.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mgr.Restore(ctx)    // re-arms the auth header if a credential was stored
//	mgr.Initialize(ctx) // verifies it, logging out if it is stale
//
// Restore guarantees the transport's authorization header is armed before it
// returns; a component wired up immediately afterwards never races an
// unauthorized transport.
//
// # Failure behavior
//
// Operations record a user-facing message in LastError and return the
// original error, so callers decide presentation while the message stays
// available until overwritten or cleared. Two failures are handled
// differently: an authorization failure on a profile fetch forces a full
// logout (the credential is evidently stale), and a failure of the remote
// logout call is swallowed entirely because local state must clear
// regardless of server reachability.
//
// Overlapping operations are not serialized or de-duplicated. The mutex
// protects state consistency, not operation ordering: when two logins race,
// whichever completes last wins.
package session
