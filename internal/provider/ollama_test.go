package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-coder:6.7b", req.Model)
		assert.Equal(t, "make a site", req.Prompt)
		assert.Equal(t, "be helpful", req.System)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "```html\n<p>hi</p>\n```"})
	}))
	defer srv.Close()

	cli := NewOllama(srv.URL, "deepseek-coder:6.7b", 5*time.Second)
	text, err := cli.Invoke(context.Background(), "make a site", "be helpful")

	require.NoError(t, err)
	assert.Equal(t, "```html\n<p>hi</p>\n```", text)
	assert.Equal(t, TagLocal, cli.Tag())
	assert.Equal(t, "deepseek-coder:6.7b", cli.Model())
}

func TestOllamaInvokeEmptyResponseIsUnavailable(t *testing.T) {
	for name, reply := range map[string]string{
		"empty":      `{"response": ""}`,
		"whitespace": `{"response": "  \n\t"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(reply))
			}))
			defer srv.Close()

			cli := NewOllama(srv.URL, "m", 5*time.Second)
			_, err := cli.Invoke(context.Background(), "p", "")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestOllamaInvokeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := NewOllama(srv.URL, "m", 5*time.Second)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaInvokeConnectionRefused(t *testing.T) {
	// Closed server: transport error, not a timeout.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cli := NewOllama(srv.URL, "m", 5*time.Second)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaInvokeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cli := NewOllama(srv.URL, "m", 50*time.Millisecond)
	_, err := cli.Invoke(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaInvokeCancelledContextPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cli := NewOllama(srv.URL, "m", 5*time.Second)
	_, err := cli.Invoke(ctx, "p", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"mistral:7b"},{"name":"deepseek-coder:6.7b"}]}`))
	}))
	defer srv.Close()

	cli := NewOllama(srv.URL, "m", 5*time.Second)
	models, err := cli.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"mistral:7b", "deepseek-coder:6.7b"}, models)
}
