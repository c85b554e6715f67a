package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestGroqClientChat(t *testing.T) {
	var gotRequest groqChatRequest

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"### Prioritas Utama\nisi"}}]}`))
	})

	client := NewGroqClient("test-key", server.URL, "llama-3.3-70b-versatile", time.Second, 1024)

	content, raw, err := client.Chat(context.Background(), []Message{{Role: "system", Content: "halo"}})
	require.NoError(t, err)
	assert.Contains(t, content, "Prioritas Utama")
	assert.NotEmpty(t, raw)

	assert.Equal(t, "llama-3.3-70b-versatile", gotRequest.Model)
	assert.Equal(t, 0.7, gotRequest.Temperature)
	assert.Equal(t, 0.9, gotRequest.TopP)
	assert.Equal(t, 0.3, gotRequest.FrequencyPenalty)
	assert.Equal(t, 1024, gotRequest.MaxTokens)
}

func TestGroqClientMissingKey(t *testing.T) {
	client := NewGroqClient("", "http://localhost", "model", time.Second, 0)

	_, _, err := client.Chat(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGroqClientUpstreamError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	client := NewGroqClient("key", server.URL, "model", time.Second, 0)

	_, raw, err := client.Chat(context.Background(), nil)
	assert.NotEmpty(t, raw)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "rate limited")
}

func TestGroqClientMalformedResponse(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	client := NewGroqClient("key", server.URL, "model", time.Second, 0)

	_, _, err := client.Chat(context.Background(), nil)

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	require.ErrorIs(t, err, ErrEmptyCompletion)
}
