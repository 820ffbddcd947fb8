package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tg := NewTelegramWithClient("test-token", server.URL, server.Client())

	err := tg.Send(context.Background(), "1001", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "1001", gotBody.ChatID)
	assert.Equal(t, "hello", gotBody.Text)
}

func TestTelegramSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	tg := NewTelegramWithClient("test-token", server.URL, server.Client())

	err := tg.Send(context.Background(), "1001", "hello")
	assert.ErrorContains(t, err, "403")
}

func TestTelegramSendRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tg := NewTelegramWithClient("test-token", server.URL, server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tg.Send(ctx, "1001", "hello")
	assert.Error(t, err)
}

func TestNoopSend(t *testing.T) {
	err := Noop{}.Send(context.Background(), "1001", "hello")
	assert.NoError(t, err)
}
