// Package redis provides Redis client initialization with connection
// verification and a Redis-backed session snapshot store.
//
// Connect wraps the go-redis client with URL validation, retry logic and a
// ping check so callers get back a client that is known to be reachable:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Store implements persist.Store on a single key, for headless deployments
// that share one session across several processes:
//
//	store := redis.NewStore(client, redis.WithTTL(30*24*time.Hour))
//	mgr, err := session.New(api, session.WithPersistence(store))
//
// Both redis:// and rediss:// (TLS) connection URLs are supported. Retry
// behavior is controlled through Config: RetryAttempts, RetryInterval and
// ConnectTimeout, with the caller's context honored throughout.
//
// Healthcheck returns a ping-based probe for readiness endpoints.
package redis
