package session

import (
	"errors"
	"strings"

	"github.com/dollro/authclient/core/client"
)

// ErrMissingAPI is returned when a manager is created without a transport.
var ErrMissingAPI = errors.New("transport API is required")

// Fallback messages used when the service supplies no structured error body.
const (
	loginFailedMessage        = "Login failed"
	registrationFailedMessage = "Registration failed"
	profileFailedMessage      = "Failed to fetch user data"
)

// loginMessage normalizes a login failure into a user-facing message:
// server detail, first non-field error, or the fixed fallback.
func loginMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if len(apiErr.NonFieldErrors) > 0 {
			return apiErr.NonFieldErrors[0]
		}
	}
	return loginFailedMessage
}

// registerMessage normalizes a registration failure: server detail, first
// non-field error, all field-level validation messages joined with ", " in
// body order, or the fixed fallback.
func registerMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if len(apiErr.NonFieldErrors) > 0 {
			return apiErr.NonFieldErrors[0]
		}
		if msgs := apiErr.FieldMessages(); len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}
	return registrationFailedMessage
}

// profileMessage normalizes a profile fetch failure: server detail or the
// fixed fallback.
func profileMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return profileFailedMessage
}

// isUnauthorized reports whether err is an authorization failure from the
// identity service.
func isUnauthorized(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}
