package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatPage = `<!DOCTYPE html>
<html><body>
  <div class="container chat-container" data-user-email="me@example.com">
    <div id="connection-status"></div>
    <div id="chat-messages"></div>
    <textarea id="chat-message-input"></textarea>
    <button id="chat-message-submit">Send</button>
  </div>
</body></html>`

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("sessionid=abc")

		assert.Equal(t, "sessionid=abc", c.cookie)
		assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
		assert.Equal(t, 2, c.maxRetries)
		assert.Equal(t, 500*time.Millisecond, c.retryBackoff)
		assert.NotNil(t, c.logger)
	})

	t.Run("with options", func(t *testing.T) {
		c := NewClient("", WithTimeout(5*time.Second), WithRetries(4, time.Second), WithLogger(nil))

		assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
		assert.Equal(t, 4, c.maxRetries)
		assert.Equal(t, time.Second, c.retryBackoff)
		assert.NotNil(t, c.logger, "nil logger keeps the default")
	})
}

func TestReadIdentity(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr error
	}{
		{"found", chatPage, "me@example.com", nil},
		{"trimmed", `<div class="chat-container" data-user-email="  me@example.com "></div>`, "me@example.com", nil},
		{"first container wins", `<div class="chat-container" data-user-email="a@x.com"></div><div class="chat-container" data-user-email="b@x.com"></div>`, "a@x.com", nil},
		{"no container", `<div class="chat"></div>`, "", ErrNoChatContainer},
		{"no attribute", `<div class="chat-container"></div>`, "", ErrMissingIdentity},
		{"empty attribute", `<div class="chat-container" data-user-email=""></div>`, "", ErrMissingIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadIdentity([]byte(tt.html))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	cookies := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies <- r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(chatPage))
	}))
	defer server.Close()

	c := NewClient("sessionid=abc")
	p, err := c.Discover(context.Background(), server.URL+"/chat/", "/ws/chat/")
	require.NoError(t, err)

	assert.Equal(t, "sessionid=abc", <-cookies)
	assert.Equal(t, "me@example.com", p.Identity)
	assert.Equal(t, "ws"+server.URL[len("http"):]+"/ws/chat/", p.Endpoint)
	assert.Equal(t, server.URL+"/chat/", p.URL)
}

func TestDiscover_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chatPage))
	}))
	defer server.Close()

	c := NewClient("", WithRetries(3, time.Millisecond))
	p, err := c.Discover(context.Background(), server.URL, "/ws/chat/")
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", p.Identity)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDiscover_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("", WithRetries(3, time.Millisecond))
	_, err := c.Discover(context.Background(), server.URL, "/ws/chat/")
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.False(t, httpErr.IsRetryable())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDiscover_RetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient("", WithRetries(1, time.Millisecond))
	_, err := c.Discover(context.Background(), server.URL, "/ws/chat/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
}

func TestDiscover_NotAChatPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><form action="/login/"></form></body></html>`))
	}))
	defer server.Close()

	_, err := NewClient("").Discover(context.Background(), server.URL, "/ws/chat/")
	assert.ErrorIs(t, err, ErrNoChatContainer)
}

func TestDiscover_BadScheme(t *testing.T) {
	_, err := NewClient("").Discover(context.Background(), "ftp://example.com/chat/", "/ws/chat/")
	require.Error(t, err)
}

func TestDiscover_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient("", WithRetries(5, time.Second))
	_, err := c.Discover(ctx, server.URL, "/ws/chat/")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
