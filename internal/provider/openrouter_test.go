package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterMissingKeyIsAuthError(t *testing.T) {
	cli := NewOpenRouter("https://openrouter.ai/api/v1", "", "some/model", time.Second)
	_, err := cli.Invoke(context.Background(), "p", "s")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestOpenRouterInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "x",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello from cloud"}}]
		}`))
	}))
	defer srv.Close()

	cli := NewOpenRouter(srv.URL, "test-key", "mistralai/mistral-7b-instruct", 5*time.Second)
	text, err := cli.Invoke(context.Background(), "p", "s")

	require.NoError(t, err)
	assert.Equal(t, "hello from cloud", text)
	assert.Equal(t, TagCloud, cli.Tag())
}

func TestOpenRouterRejectedKeyIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	cli := NewOpenRouter(srv.URL, "bad-key", "m", 5*time.Second)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestOpenRouterServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	cli := NewOpenRouter(srv.URL, "k", "m", 5*time.Second)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpenRouterEmptyChoicesIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	cli := NewOpenRouter(srv.URL, "k", "m", 5*time.Second)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}
