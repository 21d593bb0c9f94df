package client

import "errors"

var (
	// ErrMissingBaseURL is returned when a client is created without a base URL.
	ErrMissingBaseURL = errors.New("base URL is required")
	// ErrInvalidBaseURL is returned when the base URL cannot be parsed or uses
	// an unsupported scheme.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrRequestFailed is returned when a request cannot be built or executed
	// (network failure, timeout, canceled context).
	ErrRequestFailed = errors.New("request failed")
	// ErrDecodeResponse is returned when a response body cannot be decoded.
	ErrDecodeResponse = errors.New("failed to decode response")
	// ErrMissingToken is returned when a login response does not carry a token.
	ErrMissingToken = errors.New("login response missing token key")
)
