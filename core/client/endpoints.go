package client

import (
	"context"
	"encoding/json"
	"errors"
)

// Identity service endpoint paths.
const (
	loginPath        = "/login/"
	logoutPath       = "/logout/"
	registrationPath = "/registration/"
	userPath         = "/user/"
	eventsPath       = "/events/"
	stopWakeupPath   = "/actions/stopwakeup/"
)

// Token is the result of a successful login. Key holds the opaque bearer
// credential; Body is the full raw response for callers that need more.
type Token struct {
	Key  string
	Body json.RawMessage
}

// Login exchanges user credentials for a bearer token via POST /login/.
// The token is read from the response body field "key".
func (c *Client) Login(ctx context.Context, credentials map[string]string) (Token, error) {
	raw, err := c.Post(ctx, loginPath, credentials)
	if err != nil {
		return Token{}, err
	}

	var body struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Token{}, errors.Join(ErrDecodeResponse, err)
	}
	if body.Key == "" {
		return Token{}, ErrMissingToken
	}

	return Token{Key: body.Key, Body: raw}, nil
}

// Register creates a new account via POST /registration/ and returns the raw
// response body.
func (c *Client) Register(ctx context.Context, userData map[string]string) (json.RawMessage, error) {
	return c.Post(ctx, registrationPath, userData)
}

// User fetches the authenticated user's profile via GET /user/.
func (c *Client) User(ctx context.Context) (map[string]any, error) {
	raw, err := c.Get(ctx, userPath)
	if err != nil {
		return nil, err
	}

	var profile map[string]any
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	return profile, nil
}

// Logout invalidates the server-side session via POST /logout/.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, logoutPath, nil)
	return err
}

// Events fetches domain event data via GET /events/.
func (c *Client) Events(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, eventsPath)
}

// StopWakeup triggers the stop-wakeup action via POST /actions/stopwakeup/.
func (c *Client) StopWakeup(ctx context.Context) error {
	_, err := c.Post(ctx, stopWakeupPath, nil)
	return err
}
