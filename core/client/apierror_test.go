package client_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dollro/authclient/core/client"
)

// errorResponse serves a fixed error body and returns the resulting APIError.
func errorResponse(t *testing.T, status int, body string) *client.APIError {
	t.Helper()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	_, err := c.Get(context.Background(), "/user/")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	t.Run("detail message", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusUnauthorized, `{"detail":"Invalid token."}`)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "Invalid token.", apiErr.Detail)
		assert.True(t, apiErr.IsUnauthorized())
		assert.Equal(t, "api error 401: Invalid token.", apiErr.Error())
	})

	t.Run("non-field errors", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadRequest,
			`{"non_field_errors":["Unable to log in with provided credentials."]}`)
		assert.Empty(t, apiErr.Detail)
		assert.Equal(t, []string{"Unable to log in with provided credentials."}, apiErr.NonFieldErrors)
		assert.False(t, apiErr.IsUnauthorized())
	})

	t.Run("field errors preserve body order", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadRequest,
			`{"email":["already taken"],"password":["too short"]}`)
		require.Len(t, apiErr.Fields, 2)
		assert.Equal(t, "email", apiErr.Fields[0].Field)
		assert.Equal(t, "password", apiErr.Fields[1].Field)
		assert.Equal(t, []string{"already taken", "too short"}, apiErr.FieldMessages())
	})

	t.Run("single string field value", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadRequest, `{"username":"This field is required."}`)
		require.Len(t, apiErr.Fields, 1)
		assert.Equal(t, []string{"This field is required."}, apiErr.Fields[0].Messages)
	})

	t.Run("nested objects are ignored", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadRequest, `{"profile":{"bio":["too long"]}}`)
		assert.Empty(t, apiErr.Fields)
	})

	t.Run("unparseable body keeps raw bytes", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadGateway, `<html>bad gateway</html>`)
		assert.Empty(t, apiErr.Detail)
		assert.Empty(t, apiErr.Fields)
		assert.Equal(t, `<html>bad gateway</html>`, string(apiErr.Body))
		assert.Equal(t, "api error 502: Bad Gateway", apiErr.Error())
	})

	t.Run("mixed body", func(t *testing.T) {
		t.Parallel()
		apiErr := errorResponse(t, http.StatusBadRequest,
			`{"detail":"Bad request.","non_field_errors":["nope"],"email":["taken"]}`)
		assert.Equal(t, "Bad request.", apiErr.Detail)
		assert.Equal(t, []string{"nope"}, apiErr.NonFieldErrors)
		assert.Equal(t, []string{"taken"}, apiErr.FieldMessages())
	})
}

func TestAPIErrorIsNotSentinel(t *testing.T) {
	t.Parallel()

	apiErr := errorResponse(t, http.StatusInternalServerError, `{}`)
	assert.False(t, errors.Is(apiErr, client.ErrRequestFailed))
}
