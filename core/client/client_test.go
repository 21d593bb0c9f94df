package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dollro/authclient/core/client"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c, srv
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()
		_, err := client.New(client.Config{})
		require.ErrorIs(t, err, client.ErrMissingBaseURL)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()
		_, err := client.New(client.Config{BaseURL: "ftp://example.com"})
		require.ErrorIs(t, err, client.ErrInvalidBaseURL)
	})

	t.Run("valid base URL", func(t *testing.T) {
		t.Parallel()
		c, err := client.New(client.Config{BaseURL: "https://api.example.com/api/"})
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))

	c.SetAuthHeader("abc")
	assert.Equal(t, "Token abc", c.AuthHeader())

	_, err := c.Get(context.Background(), "/user/")
	require.NoError(t, err)
	assert.Equal(t, "Token abc", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Get("Accept"))

	c.ClearAuthHeader()
	assert.Empty(t, c.AuthHeader())

	_, err = c.Get(context.Background(), "/user/")
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestPost(t *testing.T) {
	t.Parallel()

	t.Run("sends JSON body", func(t *testing.T) {
		t.Parallel()

		var body map[string]string
		var contentType string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Write([]byte(`{"ok":true}`))
		}))

		raw, err := c.Post(context.Background(), "/login/", map[string]string{"username": "alice"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(raw))
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, map[string]string{"username": "alice"}, body)
	})

	t.Run("nil body sends no content type", func(t *testing.T) {
		t.Parallel()

		var contentType string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{}`))
		}))

		_, err := c.Post(context.Background(), "/logout/", nil)
		require.NoError(t, err)
		assert.Empty(t, contentType)
	})
}

func TestPathNormalization(t *testing.T) {
	t.Parallel()

	var path string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	_, err := c.Get(context.Background(), "events/")
	require.NoError(t, err)
	assert.Equal(t, "/events/", path)
}

func TestNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = c.Get(context.Background(), "/user/")
	require.ErrorIs(t, err, client.ErrRequestFailed)

	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr), "network failures carry no APIError")
}
