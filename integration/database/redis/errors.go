package redis

import "errors"

// Stable error types for connection handling. Check with errors.Is() to
// distinguish configuration mistakes from transient readiness failures.
var (
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	ErrInvalidScheme      = errors.New("redis connection URL must use redis:// or rediss://")
	ErrParseConnectionURL = errors.New("failed to parse redis connection URL")
	ErrNotReady           = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed  = errors.New("redis healthcheck failed")
)
